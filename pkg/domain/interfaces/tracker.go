package interfaces

import (
	"context"

	"github.com/m-mizutani/relnote/pkg/domain/model"
)

// IssueTracker resolves issue keys
type IssueTracker interface {
	GetIssue(ctx context.Context, key model.IssueKey) (*model.Issue, error)
}
