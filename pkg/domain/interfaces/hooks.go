package interfaces

import (
	"context"

	"github.com/m-mizutani/relnote/pkg/domain/model"
)

// Notifier announces a published release note
type Notifier interface {
	NotifyGenerated(ctx context.Context, result *model.GenerateResult) error
}

// HistoryRepository stores and loads generation audit records
type HistoryRepository interface {
	PutGeneration(ctx context.Context, record *model.GenerationRecord) error
	GetGeneration(ctx context.Context, id string) (*model.GenerationRecord, error)
}
