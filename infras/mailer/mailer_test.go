package mailer

import (
	"context"
	"garagebook/config"
	"garagebook/infras/notifier"
	"garagebook/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func configured() *config.Config {
	cfg := &config.Config{}
	cfg.Alert.Email.Host = "smtp.mobile.test"
	cfg.Alert.Email.Username = "alerts@mobile.test"
	cfg.Alert.Email.FromName = "Mobile Mechanic Alerts"
	cfg.Alert.Email.Recipient = "ops@mobile.test"

	return cfg
}

func TestNotifyNotConfigured(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{name: "no host", mutate: func(cfg *config.Config) { cfg.Alert.Email.Host = "" }},
		{name: "no recipient", mutate: func(cfg *config.Config) { cfg.Alert.Email.Recipient = "" }},
		{name: "no sender", mutate: func(cfg *config.Config) { cfg.Alert.Email.Username = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := configured()
			tt.mutate(cfg)

			err := New(cfg, mocks.NewOtel()).Notify(context.Background(), "subject", "body")

			assert.ErrorIs(t, err, notifier.ErrNotConfigured)
		})
	}
}

func TestBuildMessage(t *testing.T) {
	smtp := New(configured(), mocks.NewOtel())
	assert.Equal(t, "email", smtp.Name())

	msg, err := smtp.buildMessage("Booking conflicts detected", "2 new conflicts")
	require.NoError(t, err)

	recipients, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"ops@mobile.test"}, recipients)
	assert.Equal(t, []string{"Booking conflicts detected"}, msg.GetGenHeader(mail.HeaderSubject))
}

func TestBuildMessageRejectsBadRecipient(t *testing.T) {
	cfg := configured()
	cfg.Alert.Email.Recipient = "not an address"

	_, err := New(cfg, mocks.NewOtel()).buildMessage("subject", "body")

	assert.Error(t, err)
}

func TestClientOptions(t *testing.T) {
	cfg := configured()
	assert.Len(t, New(cfg, mocks.NewOtel()).clientOptions(), 2)

	cfg.Alert.Email.Password = "secret"
	assert.Len(t, New(cfg, mocks.NewOtel()).clientOptions(), 5)
}
