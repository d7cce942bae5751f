package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/model"
)

// changeLimit is the page size of the changes query; there is no paging beyond it
const changeLimit = 1000

// assemble builds the document for a resolved range. It returns the keys that
// could not be resolved, in discovery order.
func (uc *releaseNoteUseCase) assemble(ctx context.Context, req *model.GenerateRequest, rng *model.BuildRange) (*model.ReleaseNote, []model.IssueKey, error) {
	logger := ctxlog.From(ctx)

	if rng.Empty() {
		logger.Info("Baseline and target are the same build, nothing to compare")
		return model.NewEmptyReleaseNote(req.CurrentBuildNumber), nil, nil
	}

	changes, err := uc.builds.ChangesBetween(ctx, rng.FromBuildID, rng.ToBuildID, changeLimit)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to extract changes")
	}
	logger.Info("Extracted changes", "count", len(changes))

	note := model.NewReleaseNote(req.CurrentBuildNumber, rng.FromBuildNumber)
	var skipped []model.IssueKey

	for _, change := range changes {
		commit, err := uc.builds.GetCommit(ctx, change.CommitID)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to harvest issue keys", goerr.V("commit_id", change.CommitID))
		}
		logger.Info("Processing commit", "url", commit.URL)

		for _, key := range uc.harvester.Harvest(commit.Message) {
			res := uc.resolve(ctx, key)
			if !res.OK() {
				logger.Info("Skipping unresolved issue key", "key", key, "reason", res.Reason)
				skipped = append(skipped, key)
				continue
			}
			note.Add(res.NoteLine())
		}
	}

	return note, skipped, nil
}

// resolve never fails: every tracker error becomes an unresolved result
func (uc *releaseNoteUseCase) resolve(ctx context.Context, key model.IssueKey) model.Resolution {
	issue, err := uc.tracker.GetIssue(ctx, key)
	if err != nil {
		return model.Unresolved(key, err)
	}
	if issue == nil {
		return model.Unresolved(key, goerr.New("tracker returned no issue", goerr.V("key", key)))
	}
	return model.Resolved(key, issue)
}
