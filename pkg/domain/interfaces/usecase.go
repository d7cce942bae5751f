package interfaces

import (
	"context"

	"github.com/m-mizutani/relnote/pkg/domain/model"
)

// ReleaseNoteUseCase defines release note generation and read-back
type ReleaseNoteUseCase interface {
	// Compose builds the release note for a request without publishing it
	Compose(ctx context.Context, req *model.GenerateRequest) (*model.GenerateResult, error)

	// Generate composes, publishes and announces the release note for a request
	Generate(ctx context.Context, req *model.GenerateRequest) (*model.GenerateResult, error)

	// Fetch returns a previously published release note
	Fetch(ctx context.Context, blobName string) (string, error)

	// Generation returns the audit record of a previous generation
	Generation(ctx context.Context, id string) (*model.GenerationRecord, error)
}
