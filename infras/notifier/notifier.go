// Package notifier defines the outbound alert channel contract shared by the email, Slack and Kafka adapters.
package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by a channel whose credentials or target are missing.
// Callers record it as skipped rather than failed.
var ErrNotConfigured = errors.New("channel not configured")

type Notifier interface {
	Name() string
	Notify(ctx context.Context, subject, body string) error
}

// Channels is the ordered set of notifiers an alert fans out to.
type Channels []Notifier
