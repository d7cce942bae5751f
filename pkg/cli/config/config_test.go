package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relnote/pkg/cli/config"
	"github.com/m-mizutani/relnote/pkg/infra/devops"
	"github.com/m-mizutani/relnote/pkg/infra/storage"
	"github.com/m-mizutani/relnote/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// parseFlags runs a throwaway command so that flag defaults and env sources are applied
func parseFlags(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestDevOps_Flags(t *testing.T) {
	t.Setenv("RELNOTE_DEVOPS_PAT", "pat-from-env")

	var cfg config.DevOps
	parseFlags(t, cfg.Flags(),
		"--devops-account", "contoso",
		"--devops-project", "app",
		"--devops-repository-id", "repo-1",
	)

	gt.Equal(t, cfg.Account, "contoso")
	gt.Equal(t, cfg.Project, "app")
	gt.Equal(t, cfg.RepositoryID, "repo-1")
	gt.Equal(t, cfg.PAT, "pat-from-env")
	gt.Equal(t, cfg.BaseURL, devops.DefaultBaseURL)

	client, err := cfg.New()
	gt.NoError(t, err)
	gt.NotNil(t, client)
}

func TestDevOps_Flags_Required(t *testing.T) {
	var cfg config.DevOps
	cmd := &cli.Command{
		Name:   "test",
		Flags:  cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error { return nil },
	}
	gt.Error(t, cmd.Run(context.Background(), []string{"test", "--devops-account", "contoso"}))
}

func TestJira_Flags(t *testing.T) {
	var cfg config.Jira
	parseFlags(t, cfg.Flags(),
		"--jira-server", "https://example.atlassian.net",
		"--jira-user", "bot@example.com",
		"--jira-token", "token",
	)

	gt.Equal(t, cfg.Server, "https://example.atlassian.net")
	gt.Equal(t, cfg.KeyPattern, usecase.DefaultKeyPattern)

	client, err := cfg.New()
	gt.NoError(t, err)
	gt.NotNil(t, client)
}

func TestStorage_Flags(t *testing.T) {
	var cfg config.Storage
	parseFlags(t, cfg.Flags())
	gt.Equal(t, cfg.Bucket, storage.DefaultBucket)
	gt.Equal(t, cfg.CredentialsFile, "")
}

func TestOptionalIntegrations(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		var slackCfg config.Slack
		var firestoreCfg config.Firestore
		var sentryCfg config.Sentry
		parseFlags(t, append(append(slackCfg.Flags(), firestoreCfg.Flags()...), sentryCfg.Flags()...))

		gt.False(t, slackCfg.Enabled())
		gt.False(t, firestoreCfg.Enabled())
		gt.NoError(t, sentryCfg.Configure())
	})

	t.Run("slack needs both token and channel", func(t *testing.T) {
		var cfg config.Slack
		parseFlags(t, cfg.Flags(), "--slack-token", "xoxb-test")
		gt.False(t, cfg.Enabled())

		parseFlags(t, cfg.Flags(), "--slack-token", "xoxb-test", "--slack-channel", "C0123")
		gt.True(t, cfg.Enabled())
		gt.NotNil(t, cfg.New())
	})

	t.Run("firestore enabled by project ID", func(t *testing.T) {
		t.Setenv("RELNOTE_FIRESTORE_PROJECT_ID", "my-project")
		var cfg config.Firestore
		parseFlags(t, cfg.Flags())
		gt.True(t, cfg.Enabled())
		gt.Equal(t, cfg.DatabaseID, "(default)")
	})
}

func TestServer_Flags(t *testing.T) {
	t.Setenv("RELNOTE_TRIGGER_SECRET", "secret")

	var cfg config.Server
	parseFlags(t, cfg.Flags(), "--addr", "0.0.0.0:9000")
	gt.Equal(t, cfg.Addr, "0.0.0.0:9000")
	gt.Equal(t, cfg.TriggerSecret, "secret")
}
