package devops

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/model"
	"github.com/m-mizutani/relnote/pkg/domain/types"
)

// Azure DevOps responses carry far more fields than listed here; only the
// fields read by relnote are declared. Pointers mark fields whose absence must
// be detected.

type buildListResponse struct {
	Count *int            `json:"count"`
	Value []buildResponse `json:"value"`
}

type buildResponse struct {
	ID           *int                `json:"id"`
	BuildNumber  *string             `json:"buildNumber"`
	SourceBranch *string             `json:"sourceBranch"`
	Definition   *definitionResponse `json:"definition"`
}

type definitionResponse struct {
	ID *int `json:"id"`
}

type changeListResponse struct {
	Count *int             `json:"count"`
	Value []changeResponse `json:"value"`
}

type changeResponse struct {
	ID *string `json:"id"`
}

type commitResponse struct {
	CommitID *string `json:"commitId"`
	Comment  *string `json:"comment"`
	URL      *string `json:"url"`
}

func invalidResponse(msg string, opts ...goerr.Option) error {
	opts = append(opts, goerr.T(types.ErrTagInvalidResponse))
	return goerr.New("invalid Azure DevOps response: "+msg, opts...)
}

func (r *buildListResponse) validate() error {
	if r.Count == nil {
		return invalidResponse("missing count")
	}
	if r.Value == nil {
		return invalidResponse("missing value")
	}
	return nil
}

func (r *buildResponse) toModel() (*model.BuildReference, error) {
	switch {
	case r.ID == nil:
		return nil, invalidResponse("build without id")
	case r.BuildNumber == nil:
		return nil, invalidResponse("build without buildNumber", goerr.V("id", *r.ID))
	case r.SourceBranch == nil:
		return nil, invalidResponse("build without sourceBranch", goerr.V("id", *r.ID))
	case r.Definition == nil || r.Definition.ID == nil:
		return nil, invalidResponse("build without definition id", goerr.V("id", *r.ID))
	}

	return &model.BuildReference{
		ID:           *r.ID,
		Number:       *r.BuildNumber,
		PipelineID:   *r.Definition.ID,
		SourceBranch: *r.SourceBranch,
	}, nil
}

func (r *changeListResponse) toModel() ([]*model.ChangeRecord, error) {
	if r.Value == nil {
		return nil, invalidResponse("missing value in changes")
	}

	changes := make([]*model.ChangeRecord, 0, len(r.Value))
	for i, c := range r.Value {
		if c.ID == nil || *c.ID == "" {
			return nil, invalidResponse("change without id", goerr.V("index", i))
		}
		changes = append(changes, &model.ChangeRecord{CommitID: *c.ID})
	}
	return changes, nil
}

func (r *commitResponse) toModel(commitID string) (*model.CommitRecord, error) {
	if r.Comment == nil {
		return nil, invalidResponse("commit without comment", goerr.V("commit_id", commitID))
	}

	commit := &model.CommitRecord{
		ID:      commitID,
		Message: *r.Comment,
	}
	if r.CommitID != nil {
		commit.ID = *r.CommitID
	}
	if r.URL != nil {
		commit.URL = *r.URL
	}
	return commit, nil
}
