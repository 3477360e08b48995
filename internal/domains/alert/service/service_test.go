package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"garagebook/config"
	"garagebook/infras/notifier"
	notifierMocks "garagebook/infras/notifier/mocks"
	"garagebook/infras/otel/mocks"
	"garagebook/internal/domains/alert/model"
	"garagebook/internal/domains/alert/service"
)

func newChannel(ctrl *gomock.Controller, name string, err error) *notifierMocks.MockNotifier {
	channel := notifierMocks.NewMockNotifier(ctrl)
	channel.EXPECT().Name().Return(name).AnyTimes()
	channel.EXPECT().Notify(gomock.Any(), "2 conflicts", "details").Return(err).MaxTimes(1)

	return channel
}

func TestAlertService_Send(t *testing.T) {
	tests := []struct {
		name     string
		errs     map[string]error
		expected []model.Outcome
	}{
		{
			name: "every channel delivers",
			errs: map[string]error{},
			expected: []model.Outcome{
				{Channel: "email", Status: model.StatusSent},
				{Channel: "slack", Status: model.StatusSent},
				{Channel: "kafka", Status: model.StatusSent},
			},
		},
		{
			name: "unconfigured and failing channels",
			errs: map[string]error{
				"email": notifier.ErrNotConfigured,
				"slack": errors.New("webhook returned 500"),
				"kafka": fmt.Errorf("publish: %w", notifier.ErrNotConfigured),
			},
			expected: []model.Outcome{
				{Channel: "email", Status: model.StatusSkipped},
				{Channel: "slack", Status: model.StatusFailed, Error: "webhook returned 500"},
				{Channel: "kafka", Status: model.StatusSkipped},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			channels := notifier.Channels{
				newChannel(ctrl, "email", tt.errs["email"]),
				newChannel(ctrl, "slack", tt.errs["slack"]),
				newChannel(ctrl, "kafka", tt.errs["kafka"]),
			}

			svc := service.New(channels, &config.Config{}, mocks.NewOtel())

			outcomes := svc.Send(context.Background(), "2 conflicts", "details")

			assert.Equal(t, tt.expected, outcomes)
		})
	}
}

func TestAlertService_SendUnlimitedByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)

	channel := notifierMocks.NewMockNotifier(ctrl)
	channel.EXPECT().Name().Return("slack").AnyTimes()
	channel.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)

	svc := service.New(notifier.Channels{channel}, &config.Config{}, mocks.NewOtel())

	for range 3 {
		outcomes := svc.Send(context.Background(), "subject", "body")
		require.Len(t, outcomes, 1)
		assert.Equal(t, model.StatusSent, outcomes[0].Status)
	}
}

func TestAlertService_SendThrottled(t *testing.T) {
	ctrl := gomock.NewController(t)

	channel := notifierMocks.NewMockNotifier(ctrl)
	channel.EXPECT().Name().Return("slack").AnyTimes()
	channel.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	cfg := &config.Config{}
	cfg.Alert.MinIntervalSeconds = 3600

	svc := service.New(notifier.Channels{channel}, cfg, mocks.NewOtel())

	first := svc.Send(context.Background(), "subject", "body")
	second := svc.Send(context.Background(), "subject", "body")

	assert.Equal(t, []model.Outcome{{Channel: "slack", Status: model.StatusSent}}, first)
	assert.Equal(t, []model.Outcome{{Channel: "slack", Status: model.StatusThrottled}}, second)
	assert.True(t, model.Delivered(first))
	assert.False(t, model.Delivered(second))
}

func TestAlertService_SendWithoutChannels(t *testing.T) {
	svc := service.New(nil, &config.Config{}, mocks.NewOtel())

	assert.Empty(t, svc.Send(context.Background(), "subject", "body"))
}
