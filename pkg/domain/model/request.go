package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/types"
)

// GenerateRequest is the trigger payload for one release note generation
type GenerateRequest struct {
	FromBuildNumber    string `json:"fromBuildNumber"`
	CurrentBuildNumber string `json:"currentBuildNumber"`
	BuildType          string `json:"buildType"`
}

// Validate checks that every field is set and that the blob name derived from
// the request stays a single path segment.
func (r *GenerateRequest) Validate() error {
	fields := []struct {
		name       string
		value      string
		inBlobName bool
	}{
		{"fromBuildNumber", r.FromBuildNumber, false},
		{"currentBuildNumber", r.CurrentBuildNumber, true},
		{"buildType", r.BuildType, true},
	}

	for _, f := range fields {
		if f.value == "" {
			return goerr.New("missing required field "+f.name,
				goerr.T(types.ErrTagInvalidRequest))
		}
		if f.inBlobName && strings.Contains(f.value, "/") {
			return goerr.New("field "+f.name+" must not contain '/'",
				goerr.T(types.ErrTagInvalidRequest),
				goerr.V("value", f.value))
		}
	}

	return nil
}

// IsAuto reports whether the baseline build should be selected automatically
func (r *GenerateRequest) IsAuto() bool {
	return r.FromBuildNumber == AutoBuildNumber
}

// BlobName returns the artifact name, "{buildType}_{currentBuildNumber}.txt"
func (r *GenerateRequest) BlobName() string {
	return r.BuildType + "_" + r.CurrentBuildNumber + ".txt"
}

// GenerateResult is the outcome of a release note generation
type GenerateResult struct {
	ID          string
	BlobName    string
	Request     GenerateRequest
	Range       BuildRange
	Note        *ReleaseNote
	SkippedKeys []IssueKey
}

// Document returns the rendered release note
func (r *GenerateResult) Document() string {
	return r.Note.String()
}
