package slack

import (
	"context"
	"fmt"
	"garagebook/config"
	"garagebook/infras/notifier"
	"garagebook/infras/otel"
	"garagebook/shared/constant"

	"github.com/slack-go/slack"
)

const channelName = "slack"

// Webhook posts alerts to a Slack incoming webhook.
type Webhook struct {
	url  string
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) *Webhook {
	return &Webhook{
		url:  cfg.Alert.Slack.WebhookURL,
		otel: otel,
	}
}

func (w *Webhook) Name() string {
	return channelName
}

func (w *Webhook) Notify(ctx context.Context, subject, body string) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelAlertScopeName, constant.OtelAlertScopeName+".slack")
	defer scope.End()
	defer scope.TraceIfError(err)

	if w.url == "" {
		return notifier.ErrNotConfigured
	}

	message := &slack.WebhookMessage{
		Text: fmt.Sprintf("*%s*\n```%s```", subject, body),
	}

	if err = slack.PostWebhookContext(ctx, w.url, message); err != nil {
		return fmt.Errorf("posting slack webhook: %w", err)
	}

	return nil
}
