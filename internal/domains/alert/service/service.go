package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"garagebook/config"
	"garagebook/infras/notifier"
	"garagebook/infras/otel"
	"garagebook/internal/domains/alert/model"
	"garagebook/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Alert delivers a subject and body to every configured channel. It never fails: each channel
// reports an Outcome that is logged and returned.
type Alert interface {
	Send(ctx context.Context, subject, body string) []model.Outcome
}

type serviceImpl struct {
	channels notifier.Channels
	limiter  *rate.Limiter
	otel     otel.Otel
}

func New(channels notifier.Channels, cfg *config.Config, otel otel.Otel) Alert {
	return &serviceImpl{
		channels: channels,
		limiter:  newLimiter(cfg.Alert.MinIntervalSeconds),
		otel:     otel,
	}
}

func newLimiter(minIntervalSeconds int) *rate.Limiter {
	if minIntervalSeconds <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}

	return rate.NewLimiter(rate.Every(time.Duration(minIntervalSeconds)*time.Second), 1)
}

func (s *serviceImpl) Send(ctx context.Context, subject, body string) []model.Outcome {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelAlertScopeName, constant.OtelAlertScopeName+".Send")
	defer scope.End()

	log.Warn().Str("subject", subject).Msg(body)

	outcomes := make([]model.Outcome, 0, len(s.channels))

	if !s.limiter.Allow() {
		for _, channel := range s.channels {
			outcomes = append(outcomes, model.Outcome{Channel: channel.Name(), Status: model.StatusThrottled})
		}

		logOutcomes(subject, outcomes)

		return outcomes
	}

	for _, channel := range s.channels {
		outcomes = append(outcomes, deliver(ctx, channel, subject, body))
	}

	scope.SetAttribute("alert.channels", len(outcomes))
	logOutcomes(subject, outcomes)

	return outcomes
}

func deliver(ctx context.Context, channel notifier.Notifier, subject, body string) model.Outcome {
	outcome := model.Outcome{Channel: channel.Name(), Status: model.StatusSent}

	err := channel.Notify(ctx, subject, body)

	switch {
	case err == nil:
	case errors.Is(err, notifier.ErrNotConfigured):
		outcome.Status = model.StatusSkipped
	default:
		outcome.Status = model.StatusFailed
		outcome.Error = err.Error()
	}

	return outcome
}

func logOutcomes(subject string, outcomes []model.Outcome) {
	for _, outcome := range outcomes {
		event := log.Info()
		if outcome.Status == model.StatusFailed {
			event = log.Error()
		}

		event.
			Str("subject", subject).
			Str("channel", outcome.Channel).
			Str("status", string(outcome.Status)).
			Str("error", outcome.Error).
			Msg("alert outcome")
	}
}
