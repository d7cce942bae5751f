package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relnote/pkg/domain/model"
	"github.com/m-mizutani/relnote/pkg/domain/types"
)

var errTest = errors.New("test error")

func TestGenerateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     model.GenerateRequest
		wantErr bool
	}{
		{
			name:    "Auto baseline",
			req:     model.GenerateRequest{FromBuildNumber: "Auto", CurrentBuildNumber: "42", BuildType: "nightly"},
			wantErr: false,
		},
		{
			name:    "Explicit baseline with slash",
			req:     model.GenerateRequest{FromBuildNumber: "release/1.0", CurrentBuildNumber: "42", BuildType: "nightly"},
			wantErr: false,
		},
		{
			name:    "Missing fromBuildNumber",
			req:     model.GenerateRequest{CurrentBuildNumber: "42", BuildType: "nightly"},
			wantErr: true,
		},
		{
			name:    "Missing currentBuildNumber",
			req:     model.GenerateRequest{FromBuildNumber: "Auto", BuildType: "nightly"},
			wantErr: true,
		},
		{
			name:    "Missing buildType",
			req:     model.GenerateRequest{FromBuildNumber: "Auto", CurrentBuildNumber: "42"},
			wantErr: true,
		},
		{
			name:    "Slash in buildType",
			req:     model.GenerateRequest{FromBuildNumber: "Auto", CurrentBuildNumber: "42", BuildType: "../etc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				gt.True(t, goerr.HasTag(err, types.ErrTagInvalidRequest))
			}
		})
	}
}

func TestGenerateRequest_BlobName(t *testing.T) {
	req := model.GenerateRequest{FromBuildNumber: "Auto", CurrentBuildNumber: "42", BuildType: "nightly"}
	gt.Equal(t, req.BlobName(), "nightly_42.txt")
	gt.True(t, req.IsAuto())
}

func TestNewGenerationRecord(t *testing.T) {
	note := model.NewReleaseNote("42", "41")
	note.Add("PROJ-7 (Bug) Crash on load")

	result := &model.GenerateResult{
		ID:          "gen-1",
		BlobName:    "nightly_42.txt",
		Request:     model.GenerateRequest{FromBuildNumber: "Auto", CurrentBuildNumber: "42", BuildType: "nightly"},
		Range:       model.BuildRange{FromBuildID: 95, ToBuildID: 100, FromBuildNumber: "41", ToBuildNumber: "42"},
		Note:        note,
		SkippedKeys: []model.IssueKey{"PROJ-8"},
	}

	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	rec := model.NewGenerationRecord(result, now)

	gt.Equal(t, rec.ID, "gen-1")
	gt.Equal(t, rec.BuildType, "nightly")
	gt.Equal(t, rec.ItemCount, 1)
	gt.Equal(t, rec.SkippedKeys, []string{"PROJ-8"})
	gt.Equal(t, rec.Range.FromBuildID, 95)
	gt.Equal(t, rec.CreatedAt, now)
}
