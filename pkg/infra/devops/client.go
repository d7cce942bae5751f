package devops

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/model"
	"github.com/m-mizutani/relnote/pkg/domain/types"
)

const (
	// DefaultBaseURL is the Azure DevOps Services endpoint
	DefaultBaseURL = "https://dev.azure.com"

	buildsAPIVersion  = "5.1-preview.5"
	changesAPIVersion = "5.1-preview.2"
	commitsAPIVersion = "5.1"

	// errorBodyLimit caps how much of a failed response is kept in the error
	errorBodyLimit = 512
)

// Client queries the Azure DevOps Build and Git REST APIs
type Client struct {
	httpClient   *http.Client
	orgURL       *url.URL
	project      string
	repositoryID string
	pat          string
}

type config struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for Client
type Option func(*config)

// WithBaseURL replaces https://dev.azure.com, e.g. for Azure DevOps Server or tests
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

// New creates a new Azure DevOps client for one organization, project and repository
func New(account, project, repositoryID, pat string, opts ...Option) (*Client, error) {
	cfg := &config{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if account == "" || project == "" || repositoryID == "" {
		return nil, goerr.New("account, project and repository ID are required",
			goerr.V("account", account),
			goerr.V("project", project),
			goerr.V("repository_id", repositoryID))
	}

	base, err := url.Parse(cfg.baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse Azure DevOps base URL", goerr.V("base_url", cfg.baseURL))
	}

	return &Client{
		httpClient:   cfg.httpClient,
		orgURL:       base.JoinPath(account),
		project:      project,
		repositoryID: repositoryID,
		pat:          pat,
	}, nil
}

// LookupBuild returns the build whose buildNumber matches
func (c *Client) LookupBuild(ctx context.Context, buildNumber string) (*model.BuildReference, error) {
	query := url.Values{}
	query.Set("buildNumber", buildNumber)
	query.Set("api-version", buildsAPIVersion)

	var resp buildListResponse
	if err := c.get(ctx, c.orgURL.JoinPath(c.project, "_apis", "build", "builds"), query, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to look up build", goerr.V("build_number", buildNumber))
	}
	if err := resp.validate(); err != nil {
		return nil, err
	}
	if *resp.Count == 0 || len(resp.Value) == 0 {
		return nil, goerr.New("build not found: "+buildNumber,
			goerr.T(types.ErrTagNotFound),
			goerr.V("build_number", buildNumber))
	}

	return resp.Value[0].toModel()
}

// RecentSuccessfulBuilds returns succeeded builds of a pipeline on a branch, newest first
func (c *Client) RecentSuccessfulBuilds(ctx context.Context, pipelineID int, branch string, limit int) ([]*model.BuildReference, error) {
	query := url.Values{}
	query.Set("definitions", strconv.Itoa(pipelineID))
	query.Set("resultFilter", "succeeded")
	query.Set("$top", strconv.Itoa(limit))
	query.Set("branchName", branch)
	query.Set("api-version", buildsAPIVersion)

	var resp buildListResponse
	if err := c.get(ctx, c.orgURL.JoinPath(c.project, "_apis", "build", "builds"), query, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to query successful builds",
			goerr.V("pipeline_id", pipelineID),
			goerr.V("branch", branch))
	}
	if err := resp.validate(); err != nil {
		return nil, err
	}

	builds := make([]*model.BuildReference, 0, len(resp.Value))
	for i := range resp.Value {
		build, err := resp.Value[i].toModel()
		if err != nil {
			return nil, err
		}
		builds = append(builds, build)
	}
	return builds, nil
}

// ChangesBetween returns the changes between two builds
func (c *Client) ChangesBetween(ctx context.Context, fromBuildID, toBuildID int, limit int) ([]*model.ChangeRecord, error) {
	query := url.Values{}
	query.Set("fromBuildId", strconv.Itoa(fromBuildID))
	query.Set("toBuildId", strconv.Itoa(toBuildID))
	query.Set("$top", strconv.Itoa(limit))
	query.Set("api-version", changesAPIVersion)

	var resp changeListResponse
	if err := c.get(ctx, c.orgURL.JoinPath(c.project, "_apis", "build", "changes"), query, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to get changes between builds",
			goerr.V("from_build_id", fromBuildID),
			goerr.V("to_build_id", toBuildID))
	}

	return resp.toModel()
}

// GetCommit returns the commit from the configured repository
func (c *Client) GetCommit(ctx context.Context, commitID string) (*model.CommitRecord, error) {
	query := url.Values{}
	query.Set("api-version", commitsAPIVersion)

	var resp commitResponse
	if err := c.get(ctx, c.orgURL.JoinPath("_apis", "git", "repositories", c.repositoryID, "commits", commitID), query, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to get commit", goerr.V("commit_id", commitID))
	}

	return resp.toModel(commitID)
}

func (c *Client) get(ctx context.Context, endpoint *url.URL, query url.Values, out any) error {
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("url", endpoint.String()))
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth("", c.pat)

	ctxlog.From(ctx).Debug("Calling Azure DevOps", "url", endpoint.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request", goerr.V("url", endpoint.String()))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		opts := []goerr.Option{
			goerr.V("status", resp.StatusCode),
			goerr.V("url", endpoint.String()),
			goerr.V("body", string(body)),
		}
		if resp.StatusCode == http.StatusNotFound {
			opts = append(opts, goerr.T(types.ErrTagNotFound))
		}
		return goerr.New(fmt.Sprintf("unexpected status code %d from Azure DevOps", resp.StatusCode), opts...)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode response",
			goerr.T(types.ErrTagInvalidResponse),
			goerr.V("url", endpoint.String()))
	}

	return nil
}
