package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/infra/jira"
	"github.com/m-mizutani/relnote/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Jira holds Jira configuration
type Jira struct {
	Server     string
	User       string
	Token      string `masq:"secret"`
	KeyPattern string
}

// Flags returns CLI flags for Jira configuration
func (c *Jira) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jira-server",
			Usage:       "Jira server URL (e.g. https://example.atlassian.net)",
			Required:    true,
			Destination: &c.Server,
			Sources:     cli.EnvVars("RELNOTE_JIRA_SERVER"),
		},
		&cli.StringFlag{
			Name:        "jira-user",
			Usage:       "Jira user name",
			Required:    true,
			Destination: &c.User,
			Sources:     cli.EnvVars("RELNOTE_JIRA_USER"),
		},
		&cli.StringFlag{
			Name:        "jira-token",
			Usage:       "Jira API token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELNOTE_JIRA_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "jira-key-pattern",
			Usage:       "Regular expression matching issue keys in commit messages",
			Value:       usecase.DefaultKeyPattern,
			Destination: &c.KeyPattern,
			Sources:     cli.EnvVars("RELNOTE_JIRA_KEY_PATTERN"),
		},
	}
}

// New creates a Jira client
func (c *Jira) New() (*jira.Client, error) {
	client, err := jira.New(c.Server, c.User, c.Token)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Jira client")
	}
	return client, nil
}
