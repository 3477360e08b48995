package di

import (
	"garagebook/infras/kafka"
	"garagebook/infras/mailer"
	"garagebook/infras/notifier"
	"garagebook/infras/slack"
	"garagebook/permissions"
)

// provideAlertChannels fixes the alert fan-out order: email, Slack, then Kafka.
func provideAlertChannels(email *mailer.SMTP, webhook *slack.Webhook, publisher *kafka.AlertPublisher) notifier.Channels {
	return notifier.Channels{email, webhook, publisher}
}

func providePermissions() *permissions.PermissionData {
	return permissions.Get()
}
