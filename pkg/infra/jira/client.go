package jira

import (
	"context"
	"fmt"
	"net/http"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/model"
	"github.com/m-mizutani/relnote/pkg/domain/types"
)

// issueFields limits the issue payload to what a release note line needs
const issueFields = "summary,issuetype"

// Client resolves issues through the Jira REST API v2
type Client struct {
	client *gojira.Client
}

type config struct {
	transport http.RoundTripper
}

// Option is a functional option for Client
type Option func(*config)

// WithTransport sets the transport under the basic auth layer
func WithTransport(transport http.RoundTripper) Option {
	return func(c *config) {
		c.transport = transport
	}
}

// New creates a new Jira client authenticating with user and API token
func New(server, user, token string, opts ...Option) (*Client, error) {
	if server == "" {
		return nil, goerr.New("Jira server URL is required")
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	auth := gojira.BasicAuthTransport{
		Username:  user,
		Password:  token,
		Transport: cfg.transport,
	}

	client, err := gojira.NewClient(auth.Client(), server)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Jira client", goerr.V("server", server))
	}

	return &Client{client: client}, nil
}

// GetIssue returns the type and summary of an issue
func (c *Client) GetIssue(ctx context.Context, key model.IssueKey) (*model.Issue, error) {
	issue, resp, err := c.client.Issue.GetWithContext(ctx, string(key), &gojira.GetQueryOptions{
		Fields: issueFields,
	})
	if err != nil {
		switch {
		case resp == nil:
			return nil, goerr.Wrap(err, "failed to send Jira request", goerr.V("key", key))
		case resp.StatusCode == http.StatusNotFound:
			return nil, goerr.Wrap(err, "issue not found: "+string(key), goerr.T(types.ErrTagNotFound))
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, goerr.Wrap(err, fmt.Sprintf("unexpected status code %d from Jira", resp.StatusCode),
				goerr.V("key", key),
				goerr.V("status", resp.StatusCode))
		default:
			return nil, goerr.Wrap(err, "failed to decode Jira issue",
				goerr.T(types.ErrTagInvalidResponse),
				goerr.V("key", key))
		}
	}

	if issue == nil || issue.Fields == nil || issue.Fields.Summary == "" || issue.Fields.Type.Name == "" {
		return nil, goerr.New("Jira issue without summary or issuetype",
			goerr.T(types.ErrTagInvalidResponse),
			goerr.V("key", key))
	}

	return &model.Issue{
		Key:     model.IssueKey(issue.Key),
		Type:    issue.Fields.Type.Name,
		Summary: issue.Fields.Summary,
	}, nil
}
