package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/model"
)

// recentBuildLimit is two so that the build being documented can be skipped
// when it is already reported as the newest successful one.
const recentBuildLimit = 2

// resolveRange determines the builds to compare for a request
func (uc *releaseNoteUseCase) resolveRange(ctx context.Context, req *model.GenerateRequest) (*model.BuildRange, error) {
	logger := ctxlog.From(ctx)

	to, err := uc.builds.LookupBuild(ctx, req.CurrentBuildNumber)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve target build")
	}

	rng := &model.BuildRange{
		ToBuildID:       to.ID,
		ToBuildNumber:   req.CurrentBuildNumber,
		FromBuildNumber: req.FromBuildNumber,
	}
	logger.Info("Resolved target build", "to_build_id", rng.ToBuildID)

	if !req.IsAuto() {
		from, err := uc.builds.LookupBuild(ctx, req.FromBuildNumber)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve baseline build")
		}
		rng.FromBuildID = from.ID
		logger.Info("Resolved explicit baseline build", "from_build_id", rng.FromBuildID)
		return rng, nil
	}

	recent, err := uc.builds.RecentSuccessfulBuilds(ctx, to.PipelineID, to.SourceBranch, recentBuildLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve baseline build",
			goerr.V("pipeline_id", to.PipelineID),
			goerr.V("source_branch", to.SourceBranch))
	}

	// No successful build yet on this branch: compare the build with itself
	rng.FromBuildID = rng.ToBuildID
	if len(recent) > 0 {
		rng.FromBuildID = recent[0].ID
		rng.FromBuildNumber = recent[0].Number
	}

	// The target build may already be marked succeeded and come back as the
	// newest result. Only then fall back to the next older one.
	if rng.FromBuildID == rng.ToBuildID && len(recent) > 1 {
		logger.Info("Newest successful build is the target, using the previous one")
		rng.FromBuildID = recent[1].ID
		rng.FromBuildNumber = recent[1].Number
	}

	logger.Info("Resolved automatic baseline build",
		"from_build_id", rng.FromBuildID,
		"from_build_number", rng.FromBuildNumber,
		"candidates", len(recent),
	)
	return rng, nil
}
