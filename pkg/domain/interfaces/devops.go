package interfaces

import (
	"context"

	"github.com/m-mizutani/relnote/pkg/domain/model"
)

// BuildClient defines the CI build queries needed to diff two builds
type BuildClient interface {
	// LookupBuild returns the build with the given display number
	LookupBuild(ctx context.Context, buildNumber string) (*model.BuildReference, error)

	// RecentSuccessfulBuilds returns up to limit succeeded builds of a pipeline and branch, newest first
	RecentSuccessfulBuilds(ctx context.Context, pipelineID int, branch string, limit int) ([]*model.BuildReference, error)

	// ChangesBetween returns up to limit changes between two builds
	ChangesBetween(ctx context.Context, fromBuildID, toBuildID int, limit int) ([]*model.ChangeRecord, error)

	// GetCommit returns commit metadata
	GetCommit(ctx context.Context, commitID string) (*model.CommitRecord, error)
}
