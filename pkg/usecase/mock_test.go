package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/m-mizutani/relnote/pkg/domain/model"
)

// MockBuildClient is a mock implementation of BuildClient backed by fixtures
type MockBuildClient struct {
	builds  map[string]*model.BuildReference
	recent  []*model.BuildReference
	changes []*model.ChangeRecord
	commits map[string]*model.CommitRecord

	lookupErr  error
	changesErr error
	commitErr  error

	recentCalls  []MockRecentCall
	changesCalls []MockChangesCall
}

type MockRecentCall struct {
	PipelineID int
	Branch     string
	Limit      int
}

type MockChangesCall struct {
	FromBuildID int
	ToBuildID   int
	Limit       int
}

func (m *MockBuildClient) LookupBuild(ctx context.Context, buildNumber string) (*model.BuildReference, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	build, ok := m.builds[buildNumber]
	if !ok {
		return nil, errors.New("build not found: " + buildNumber)
	}
	return build, nil
}

func (m *MockBuildClient) RecentSuccessfulBuilds(ctx context.Context, pipelineID int, branch string, limit int) ([]*model.BuildReference, error) {
	m.recentCalls = append(m.recentCalls, MockRecentCall{PipelineID: pipelineID, Branch: branch, Limit: limit})
	return m.recent, nil
}

func (m *MockBuildClient) ChangesBetween(ctx context.Context, fromBuildID, toBuildID int, limit int) ([]*model.ChangeRecord, error) {
	m.changesCalls = append(m.changesCalls, MockChangesCall{FromBuildID: fromBuildID, ToBuildID: toBuildID, Limit: limit})
	if m.changesErr != nil {
		return nil, m.changesErr
	}
	return m.changes, nil
}

func (m *MockBuildClient) GetCommit(ctx context.Context, commitID string) (*model.CommitRecord, error) {
	if m.commitErr != nil {
		return nil, m.commitErr
	}
	commit, ok := m.commits[commitID]
	if !ok {
		return nil, errors.New("commit not found: " + commitID)
	}
	return commit, nil
}

// MockIssueTracker resolves keys from a fixed table; unknown keys fail
type MockIssueTracker struct {
	issues map[model.IssueKey]*model.Issue
	calls  []model.IssueKey
}

func (m *MockIssueTracker) GetIssue(ctx context.Context, key model.IssueKey) (*model.Issue, error) {
	m.calls = append(m.calls, key)
	issue, ok := m.issues[key]
	if !ok {
		return nil, errors.New("issue does not exist: " + string(key))
	}
	return issue, nil
}

// MockArtifactStore keeps objects in memory
type MockArtifactStore struct {
	objects  map[string]string
	writeErr error
}

func (m *MockArtifactStore) WriteText(ctx context.Context, name, content string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if m.objects == nil {
		m.objects = map[string]string{}
	}
	m.objects[name] = content
	return nil
}

func (m *MockArtifactStore) ReadText(ctx context.Context, name string) (string, error) {
	content, ok := m.objects[name]
	if !ok {
		return "", errors.New("not found")
	}
	return content, nil
}

// MockNotifier signals every notification on a channel
type MockNotifier struct {
	notified chan *model.GenerateResult
}

func (m *MockNotifier) NotifyGenerated(ctx context.Context, result *model.GenerateResult) error {
	m.notified <- result
	return nil
}

// MockHistory stores records in memory
type MockHistory struct {
	mu      sync.Mutex
	records map[string]*model.GenerationRecord
	put     chan string
}

func (m *MockHistory) PutGeneration(ctx context.Context, record *model.GenerationRecord) error {
	m.mu.Lock()
	if m.records == nil {
		m.records = map[string]*model.GenerationRecord{}
	}
	m.records[record.ID] = record
	m.mu.Unlock()

	if m.put != nil {
		m.put <- record.ID
	}
	return nil
}

func (m *MockHistory) GetGeneration(ctx context.Context, id string) (*model.GenerationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return record, nil
}
