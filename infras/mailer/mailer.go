package mailer

import (
	"context"
	"fmt"
	"garagebook/config"
	"garagebook/infras/notifier"
	"garagebook/infras/otel"
	"garagebook/shared/constant"

	"github.com/wneessen/go-mail"
)

const channelName = "email"

// SMTP sends plain text alerts through the configured mail relay.
type SMTP struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) *SMTP {
	return &SMTP{
		cfg:  cfg,
		otel: otel,
	}
}

func (m *SMTP) Name() string {
	return channelName
}

func (m *SMTP) configured() bool {
	email := m.cfg.Alert.Email

	return email.Host != "" && email.Recipient != "" && email.Username != ""
}

func (m *SMTP) Notify(ctx context.Context, subject, body string) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelAlertScopeName, constant.OtelAlertScopeName+".email")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !m.configured() {
		return notifier.ErrNotConfigured
	}

	msg, err := m.buildMessage(subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Alert.Email.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending alert email: %w", err)
	}

	return nil
}

func (m *SMTP) buildMessage(subject, body string) (*mail.Msg, error) {
	email := m.cfg.Alert.Email

	msg := mail.NewMsg()
	if err := msg.FromFormat(email.FromName, email.Username); err != nil {
		return nil, fmt.Errorf("setting alert sender: %w", err)
	}

	if err := msg.To(email.Recipient); err != nil {
		return nil, fmt.Errorf("setting alert recipient: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, nil
}

func (m *SMTP) clientOptions() []mail.Option {
	email := m.cfg.Alert.Email

	port := email.Port
	if port == 0 {
		port = mail.DefaultPortTLS
	}

	options := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	if email.Password != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(email.Username),
			mail.WithPassword(email.Password),
		)
	}

	return options
}
