package alert

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/cm-analytics/eventcheck/internal/domain"
)

// SlackDispatcher posts discrepancy alerts to a Slack channel through a bot
// token.
type SlackDispatcher struct {
	client    *slack.Client
	channelID string
}

// NewSlackDispatcher creates a dispatcher for the given bot token and channel.
func NewSlackDispatcher(token, channelID string) *SlackDispatcher {
	return &SlackDispatcher{
		client:    slack.New(token),
		channelID: channelID,
	}
}

// Notify posts the missing-cell list as a single message.
func (d *SlackDispatcher) Notify(ctx context.Context, category domain.Category, missing []domain.CheckResult) error {
	_, _, err := d.client.PostMessageContext(ctx, d.channelID,
		slack.MsgOptionText(FormatMessage(category, missing), false),
	)
	if err != nil {
		return fmt.Errorf("post alert for %s: %w", category.Name, err)
	}
	return nil
}
