package notify

import (
	"context"
	"fmt"

	slacklib "github.com/slack-go/slack"

	"github.com/vaadly/vaadly/internal/config"
	"github.com/vaadly/vaadly/internal/domain"
)

// SlackAPI abstracts the subset of the Slack client used here, so tests
// run without real HTTP calls.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slacklib.MsgOption) (string, string, error)
}

// Slack posts announcements to a single configured channel.
type Slack struct {
	api     SlackAPI
	channel string
}

var _ Notifier = (*Slack)(nil)

// NewSlack builds a channel notifier over an existing Slack client.
func NewSlack(api SlackAPI, channel string) *Slack {
	return &Slack{api: api, channel: channel}
}

// FromConfig returns a Slack notifier when a bot token is configured, and
// the nop notifier otherwise.
func FromConfig(cfg config.SlackConfig) Notifier {
	if cfg.BotToken == "" || cfg.Channel == "" {
		return Nop{}
	}
	return NewSlack(slacklib.New(cfg.BotToken), cfg.Channel)
}

func (s *Slack) TenancyEnded(ctx context.Context, h *domain.TenantHistory) error {
	text := fmt.Sprintf(
		"Tenancy ended: %s %s left building %d apartment %d on %s (%d days).",
		h.FirstName, h.LastName, h.BuildingNumber, h.ApartmentNumber,
		h.MoveOutDate.String(), h.TenancyDurationDays(),
	)
	return s.post(ctx, text)
}

func (s *Slack) ReportGenerated(ctx context.Context, reportType, reportID string) error {
	return s.post(ctx, fmt.Sprintf("Report generated: %s (%s).", reportType, reportID))
}

func (s *Slack) post(ctx context.Context, text string) error {
	_, _, err := s.api.PostMessageContext(ctx, s.channel, slacklib.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("notify.Slack: post message: %w", err)
	}
	return nil
}
