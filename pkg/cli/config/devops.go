package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/infra/devops"
	"github.com/urfave/cli/v3"
)

// DevOps holds Azure DevOps configuration
type DevOps struct {
	Account      string
	Project      string
	RepositoryID string
	PAT          string `masq:"secret"`
	BaseURL      string
}

// Flags returns CLI flags for Azure DevOps configuration
func (c *DevOps) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "devops-account",
			Usage:       "Azure DevOps organization name",
			Required:    true,
			Destination: &c.Account,
			Sources:     cli.EnvVars("RELNOTE_DEVOPS_ACCOUNT"),
		},
		&cli.StringFlag{
			Name:        "devops-project",
			Usage:       "Azure DevOps project name",
			Required:    true,
			Destination: &c.Project,
			Sources:     cli.EnvVars("RELNOTE_DEVOPS_PROJECT"),
		},
		&cli.StringFlag{
			Name:        "devops-repository-id",
			Usage:       "Git repository ID that commits are looked up in",
			Required:    true,
			Destination: &c.RepositoryID,
			Sources:     cli.EnvVars("RELNOTE_DEVOPS_REPOSITORY_ID"),
		},
		&cli.StringFlag{
			Name:        "devops-pat",
			Usage:       "Azure DevOps personal access token",
			Required:    true,
			Destination: &c.PAT,
			Sources:     cli.EnvVars("RELNOTE_DEVOPS_PAT"),
		},
		&cli.StringFlag{
			Name:        "devops-base-url",
			Usage:       "Azure DevOps base URL",
			Value:       devops.DefaultBaseURL,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("RELNOTE_DEVOPS_BASE_URL"),
		},
	}
}

// New creates an Azure DevOps client
func (c *DevOps) New() (*devops.Client, error) {
	client, err := devops.New(c.Account, c.Project, c.RepositoryID, c.PAT, devops.WithBaseURL(c.BaseURL))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Azure DevOps client")
	}
	return client, nil
}
