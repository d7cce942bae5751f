package config

import (
	"github.com/m-mizutani/relnote/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack notification configuration
type Slack struct {
	Token   string `masq:"secret"`
	Channel string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token (notification disabled if empty)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELNOTE_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID to post notifications to",
			Destination: &c.Channel,
			Sources:     cli.EnvVars("RELNOTE_SLACK_CHANNEL"),
		},
	}
}

// Enabled reports whether both token and channel are set
func (c *Slack) Enabled() bool {
	return c.Token != "" && c.Channel != ""
}

// New creates a Slack notifier
func (c *Slack) New() *slack.Notifier {
	return slack.New(c.Token, c.Channel)
}
