package http

import (
	"net/http"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// TriggerAuth returns a middleware that requires an HS256 signed JWT, signed
// with secret, in the Authorization header
func TriggerAuth(secret string) func(next http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := ctxlog.From(r.Context())

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.Warn("Missing bearer token")
				writeError(w, goerr.New("missing bearer token"), http.StatusUnauthorized)
				return
			}

			if _, err := jwt.Parse([]byte(token), jwt.WithKey(jwa.HS256, key), jwt.WithValidate(true)); err != nil {
				logger.Warn("Invalid bearer token", "error", err)
				writeError(w, goerr.Wrap(err, "invalid bearer token"), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
