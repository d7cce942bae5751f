package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/interfaces"
	"github.com/m-mizutani/relnote/pkg/domain/model"
	"github.com/m-mizutani/relnote/pkg/domain/types"
	"github.com/m-mizutani/relnote/pkg/utils/async"
)

type releaseNoteUseCase struct {
	builds    interfaces.BuildClient
	tracker   interfaces.IssueTracker
	store     interfaces.ArtifactStore
	harvester *KeyHarvester
	notifier  interfaces.Notifier
	history   interfaces.HistoryRepository
	now       func() time.Time
}

type config struct {
	keyPattern string
	store      interfaces.ArtifactStore
	notifier   interfaces.Notifier
	history    interfaces.HistoryRepository
	now        func() time.Time
}

// Option is a functional option for the release note use case
type Option func(*config)

// WithKeyPattern overrides DefaultKeyPattern
func WithKeyPattern(pattern string) Option {
	return func(c *config) {
		c.keyPattern = pattern
	}
}

// WithArtifactStore sets where Generate publishes documents
func WithArtifactStore(store interfaces.ArtifactStore) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithNotifier announces published documents
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(c *config) {
		c.notifier = notifier
	}
}

// WithHistory records every published document
func WithHistory(history interfaces.HistoryRepository) Option {
	return func(c *config) {
		c.history = history
	}
}

// WithClock replaces time.Now for history records
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// NewReleaseNote creates a new instance of ReleaseNoteUseCase
func NewReleaseNote(builds interfaces.BuildClient, tracker interfaces.IssueTracker, opts ...Option) (interfaces.ReleaseNoteUseCase, error) {
	cfg := &config{
		keyPattern: DefaultKeyPattern,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	harvester, err := NewKeyHarvester(cfg.keyPattern)
	if err != nil {
		return nil, err
	}

	return &releaseNoteUseCase{
		builds:    builds,
		tracker:   tracker,
		store:     cfg.store,
		harvester: harvester,
		notifier:  cfg.notifier,
		history:   cfg.history,
		now:       cfg.now,
	}, nil
}

// Compose resolves the build range and assembles the document
func (uc *releaseNoteUseCase) Compose(ctx context.Context, req *model.GenerateRequest) (*model.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger := ctxlog.From(ctx).With(
		"from_build_number", req.FromBuildNumber,
		"current_build_number", req.CurrentBuildNumber,
		"build_type", req.BuildType,
	)
	ctx = ctxlog.With(ctx, logger)
	logger.Info("Composing release notes")

	rng, err := uc.resolveRange(ctx, req)
	if err != nil {
		return nil, err
	}

	note, skipped, err := uc.assemble(ctx, req, rng)
	if err != nil {
		return nil, err
	}

	logger.Info("Composed release notes",
		"items", len(note.Items),
		"skipped_keys", len(skipped),
	)

	return &model.GenerateResult{
		ID:          uuid.NewString(),
		BlobName:    req.BlobName(),
		Request:     *req,
		Range:       *rng,
		Note:        note,
		SkippedKeys: skipped,
	}, nil
}

// Generate composes the document, writes it to the artifact store and
// dispatches the notification and history hooks
func (uc *releaseNoteUseCase) Generate(ctx context.Context, req *model.GenerateRequest) (*model.GenerateResult, error) {
	if uc.store == nil {
		return nil, goerr.New("artifact store is not configured")
	}

	result, err := uc.Compose(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := uc.store.WriteText(ctx, result.BlobName, result.Document()); err != nil {
		return nil, goerr.Wrap(err, "failed to publish release notes", goerr.V("blob_name", result.BlobName))
	}

	ctxlog.From(ctx).Info("Published release notes",
		"blob_name", result.BlobName,
		"generation_id", result.ID,
	)

	uc.dispatchHooks(ctx, result)
	return result, nil
}

func (uc *releaseNoteUseCase) dispatchHooks(ctx context.Context, result *model.GenerateResult) {
	if uc.history != nil {
		record := model.NewGenerationRecord(result, uc.now())
		async.Dispatch(ctx, "history", func(ctx context.Context) error {
			return uc.history.PutGeneration(ctx, record)
		})
	}

	if uc.notifier != nil {
		async.Dispatch(ctx, "notify", func(ctx context.Context) error {
			return uc.notifier.NotifyGenerated(ctx, result)
		})
	}
}

// Fetch returns a published document
func (uc *releaseNoteUseCase) Fetch(ctx context.Context, blobName string) (string, error) {
	if uc.store == nil {
		return "", goerr.New("artifact store is not configured")
	}
	return uc.store.ReadText(ctx, blobName)
}

// Generation returns a stored generation record
func (uc *releaseNoteUseCase) Generation(ctx context.Context, id string) (*model.GenerationRecord, error) {
	if uc.history == nil {
		return nil, goerr.New("generation history is disabled", goerr.T(types.ErrTagNotFound))
	}
	return uc.history.GetGeneration(ctx, id)
}
