package usecase

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/model"
)

// DefaultKeyPattern matches Jira style keys such as PROJ-123. Matching is
// case-sensitive, so proj-123 is not a key.
const DefaultKeyPattern = `[A-Z]+-[0-9]+`

// KeyHarvester extracts issue keys from commit messages
type KeyHarvester struct {
	pattern *regexp.Regexp
}

// NewKeyHarvester compiles pattern
func NewKeyHarvester(pattern string) (*KeyHarvester, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid issue key pattern", goerr.V("pattern", pattern))
	}
	return &KeyHarvester{pattern: re}, nil
}

// Harvest returns the distinct keys of message in order of first appearance.
// Deduplication is scoped to this one message.
func (h *KeyHarvester) Harvest(message string) []model.IssueKey {
	matches := h.pattern.FindAllString(message, -1)

	seen := make(map[string]struct{}, len(matches))
	keys := make([]model.IssueKey, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		keys = append(keys, model.IssueKey(m))
	}
	return keys
}
