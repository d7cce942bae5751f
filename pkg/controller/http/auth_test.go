package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/gt"

	controller "github.com/m-mizutani/relnote/pkg/controller/http"
	"github.com/m-mizutani/relnote/pkg/domain/model"
)

// signToken generates an HS256 token for testing
func signToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewBuilder().
		Subject("ci-pipeline").
		IssuedAt(time.Now()).
		Expiration(exp).
		Build()
	gt.NoError(t, err)

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secret)))
	gt.NoError(t, err)
	return string(signed)
}

func TestTriggerAuth(t *testing.T) {
	secret := "trigger-secret"
	uc := &MockReleaseNoteUseCase{
		generateFunc: func(ctx context.Context, req *model.GenerateRequest) (*model.GenerateResult, error) {
			return &model.GenerateResult{ID: "gen-1", BlobName: req.BlobName(), Note: model.NewEmptyReleaseNote("42")}, nil
		},
	}
	handler := newTestServer(t, uc, controller.WithTriggerSecret(secret))

	tests := []struct {
		name           string
		authorization  string
		wantStatusCode int
	}{
		{
			name:           "Valid token",
			authorization:  "Bearer " + signToken(t, secret, time.Now().Add(time.Hour)),
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "Token signed with another secret",
			authorization:  "Bearer " + signToken(t, "other", time.Now().Add(time.Hour)),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "Expired token",
			authorization:  "Bearer " + signToken(t, secret, time.Now().Add(-time.Hour)),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "Missing token",
			authorization:  "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "Wrong scheme",
			authorization:  "Basic dXNlcjpwYXNz",
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := []byte(`{"fromBuildNumber":"Auto","currentBuildNumber":"42","buildType":"nightly"}`)
			req := httptest.NewRequest(http.MethodPost, "/api/releasenotes", bytes.NewReader(body))
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Errorf("status = %v, want %v, body = %s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestTriggerAuth_HealthIsOpen(t *testing.T) {
	handler := newTestServer(t, &MockReleaseNoteUseCase{}, controller.WithTriggerSecret("trigger-secret"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	gt.Equal(t, w.Code, http.StatusOK)
}
