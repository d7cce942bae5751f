package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/infra/storage"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Storage holds artifact storage configuration
type Storage struct {
	Bucket          string
	CredentialsFile string
}

// Flags returns CLI flags for artifact storage configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "Cloud Storage bucket that release notes are written to",
			Value:       storage.DefaultBucket,
			Destination: &c.Bucket,
			Sources:     cli.EnvVars("RELNOTE_STORAGE_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "storage-credentials",
			Usage:       "Path to a service account key file (application default credentials if empty)",
			Destination: &c.CredentialsFile,
			Sources:     cli.EnvVars("RELNOTE_STORAGE_CREDENTIALS"),
		},
	}
}

// New creates a Cloud Storage backed artifact store
func (c *Storage) New(ctx context.Context) (*storage.Client, error) {
	var opts []option.ClientOption
	if c.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
	}

	client, err := storage.New(ctx, c.Bucket, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create artifact store", goerr.V("bucket", c.Bucket))
	}
	return client, nil
}
