package kafka

import (
	"context"
	"garagebook/config"
	"garagebook/infras/notifier"
	"garagebook/shared/timezone"
	"time"
)

const (
	alertChannelName = "kafka"
	alertMessageKey  = "alert"
)

// AlertEvent is the JSON value published for every alert.
type AlertEvent struct {
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// AlertPublisher exposes the Kafka producer as an alert channel.
type AlertPublisher struct {
	client Client
	topic  string
}

func NewAlertPublisher(client Client, cfg *config.Config) *AlertPublisher {
	return &AlertPublisher{
		client: client,
		topic:  cfg.Alert.Kafka.Topic,
	}
}

func (p *AlertPublisher) Name() string {
	return alertChannelName
}

func (p *AlertPublisher) Notify(ctx context.Context, subject, body string) error {
	if p.topic == "" || p.client == nil || !p.client.Enabled() {
		return notifier.ErrNotConfigured
	}

	return p.client.SendMessages(ctx, p.topic, Message{ //nolint:wrapcheck
		Key: alertMessageKey,
		Value: AlertEvent{
			Subject: subject,
			Body:    body,
			SentAt:  timezone.Now(),
		},
	})
}
