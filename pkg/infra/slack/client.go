package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Notifier posts a message to a Slack channel when a release note is published
type Notifier struct {
	client  *slack.Client
	channel string
}

// New creates a new Slack notifier. opts are passed to the Slack client.
func New(token, channel string, opts ...slack.Option) *Notifier {
	return &Notifier{
		client:  slack.New(token, opts...),
		channel: channel,
	}
}

// NotifyGenerated posts a summary of the result with the document attached as a code block
func (n *Notifier) NotifyGenerated(ctx context.Context, result *model.GenerateResult) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(formatMessage(result), false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack message",
			goerr.V("channel", n.channel),
			goerr.V("blob_name", result.BlobName))
	}
	return nil
}

func formatMessage(result *model.GenerateResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Release notes `%s` published for build %s", result.BlobName, result.Request.CurrentBuildNumber)
	if !result.Range.Empty() {
		fmt.Fprintf(&sb, " (compared with %s)", result.Range.FromBuildNumber)
	}
	fmt.Fprintf(&sb, ": %d item(s)", len(result.Note.Items))

	if len(result.SkippedKeys) > 0 {
		keys := make([]string, 0, len(result.SkippedKeys))
		for _, key := range result.SkippedKeys {
			keys = append(keys, string(key))
		}
		fmt.Fprintf(&sb, "\nUnresolved keys: %s", strings.Join(keys, ", "))
	}

	sb.WriteString("\n```\n")
	sb.WriteString(result.Document())
	sb.WriteString("\n```")

	return sb.String()
}
