package config

import (
	"context"

	"github.com/m-mizutani/relnote/pkg/infra/firestore"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Firestore holds generation history configuration
type Firestore struct {
	ProjectID       string
	DatabaseID      string
	CredentialsFile string
}

// Flags returns CLI flags for Firestore configuration
func (c *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Google Cloud project ID for generation history (disabled if empty)",
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("RELNOTE_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Value:       firestore.DefaultDatabaseID,
			Destination: &c.DatabaseID,
			Sources:     cli.EnvVars("RELNOTE_FIRESTORE_DATABASE_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-credentials",
			Usage:       "Path to a service account key file (application default credentials if empty)",
			Destination: &c.CredentialsFile,
			Sources:     cli.EnvVars("RELNOTE_FIRESTORE_CREDENTIALS"),
		},
	}
}

// Enabled reports whether generation history is configured
func (c *Firestore) Enabled() bool {
	return c.ProjectID != ""
}

// New creates a Firestore backed history repository
func (c *Firestore) New(ctx context.Context) (*firestore.Client, error) {
	var opts []option.ClientOption
	if c.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
	}

	return firestore.New(ctx, c.ProjectID, c.DatabaseID, opts...)
}
