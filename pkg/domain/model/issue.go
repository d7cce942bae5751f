package model

import "fmt"

// IssueKey is an issue tracker key such as PROJ-123
type IssueKey string

// Issue is the subset of tracker fields rendered into a release note line
type Issue struct {
	Key     IssueKey
	Type    string
	Summary string
}

// Resolution is the outcome of looking up one issue key. Exactly one of Issue
// and Reason is set.
type Resolution struct {
	Key    IssueKey
	Issue  *Issue
	Reason error
}

// Resolved returns a successful resolution
func Resolved(key IssueKey, issue *Issue) Resolution {
	return Resolution{Key: key, Issue: issue}
}

// Unresolved returns a failed resolution carrying the reason
func Unresolved(key IssueKey, reason error) Resolution {
	return Resolution{Key: key, Reason: reason}
}

// OK reports whether the key was resolved
func (r Resolution) OK() bool {
	return r.Reason == nil && r.Issue != nil
}

// NoteLine renders the resolution as "{key} ({type}) {summary}". The key is
// the one found in the commit message, not the one echoed by the tracker.
func (r Resolution) NoteLine() string {
	return fmt.Sprintf("%s (%s) %s", r.Key, r.Issue.Type, r.Issue.Summary)
}
