package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relnote/pkg/domain/model"
	"github.com/m-mizutani/relnote/pkg/usecase"
)

func TestKeyHarvester_Harvest(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected []model.IssueKey
	}{
		{
			name:     "Single key",
			message:  "PROJ-123 fix login",
			expected: []model.IssueKey{"PROJ-123"},
		},
		{
			name:     "Duplicate key in one message",
			message:  "Fix PROJ-7 and PROJ-7 again",
			expected: []model.IssueKey{"PROJ-7"},
		},
		{
			name:     "Order of first appearance",
			message:  "ABC-2, PROJ-1, ABC-2 and XY-10",
			expected: []model.IssueKey{"ABC-2", "PROJ-1", "XY-10"},
		},
		{
			name:     "Lowercase prefix is not a key",
			message:  "proj-123 is not tracked",
			expected: []model.IssueKey{},
		},
		{
			name:     "Prefix without digits",
			message:  "PROJ- has no number",
			expected: []model.IssueKey{},
		},
		{
			name:     "Digits without prefix",
			message:  "bump to 123",
			expected: []model.IssueKey{},
		},
		{
			name:     "Key inside a branch name",
			message:  "Merge branch feature/PROJ-42-login",
			expected: []model.IssueKey{"PROJ-42"},
		},
		{
			name:     "Multiline message",
			message:  "Summary line\n\nRefs: PROJ-1\nCloses: PROJ-2",
			expected: []model.IssueKey{"PROJ-1", "PROJ-2"},
		},
	}

	h, err := usecase.NewKeyHarvester(usecase.DefaultKeyPattern)
	gt.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, h.Harvest(tt.message), tt.expected)
		})
	}
}

func TestKeyHarvester_CustomPattern(t *testing.T) {
	h, err := usecase.NewKeyHarvester(`KEY-\d+`)
	gt.NoError(t, err)

	gt.Equal(t, h.Harvest("KEY-1 and OTHER-2 and KEY-3"), []model.IssueKey{"KEY-1", "KEY-3"})
}

func TestKeyHarvester_InvalidPattern(t *testing.T) {
	_, err := usecase.NewKeyHarvester(`[A-Z+`)
	gt.Error(t, err)
}
