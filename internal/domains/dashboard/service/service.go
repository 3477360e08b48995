package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"garagebook/config"
	"garagebook/infras/otel"
	alertService "garagebook/internal/domains/alert/service"
	bookingRepo "garagebook/internal/domains/booking/repository"
	"garagebook/internal/domains/report/model/dto"
	userRepo "garagebook/internal/domains/user/repository"
	"garagebook/shared/constant"
	gDto "garagebook/shared/dto"
	"garagebook/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	statusOK       = "ok"
	statusDisabled = "disabled"
	statusError    = "error: %v"

	healthMessage = "backend is running"
)

// Pinger is satisfied by *postgres.Connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Collections is satisfied by *mongo.Connection, including a nil one.
type Collections interface {
	Enabled() bool
	CollectionNames(ctx context.Context) ([]string, error)
}

type Dashboard interface {
	DatabaseStatus(ctx context.Context) dto.DatabaseStatusResponse
	HealthStatus(ctx context.Context) (dto.HealthStatusResponse, error)
	TestAlert(ctx context.Context, req dto.TestAlertRequest) dto.TestAlertResponse
}

type serviceImpl struct {
	postgres    Pinger
	collections Collections
	userRepo    userRepo.User
	bookingRepo bookingRepo.Booking
	alert       alertService.Alert
	sink        logger.ReportSink
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	postgres Pinger,
	collections Collections,
	userRepo userRepo.User,
	bookingRepo bookingRepo.Booking,
	alert alertService.Alert,
	sink logger.ReportSink,
	cfg *config.Config,
	otel otel.Otel,
) Dashboard {
	return &serviceImpl{
		postgres:    postgres,
		collections: collections,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		alert:       alert,
		sink:        sink,
		cfg:         cfg,
		otel:        otel,
	}
}

// DatabaseStatus never fails. Store problems are reported in the status fields.
func (s *serviceImpl) DatabaseStatus(ctx context.Context) dto.DatabaseStatusResponse {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.DatabaseStatus")
	defer scope.End()

	res := dto.DatabaseStatusResponse{
		Postgres:         statusOK,
		Mongo:            statusDisabled,
		MongoCollections: []string{},
	}

	if err := s.postgres.Ping(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("postgres ping failed")

		res.Postgres = fmt.Sprintf(statusError, err)
	} else {
		res.Users = s.count(ctx, s.userRepo.Count, "users")
		res.Bookings = s.count(ctx, s.bookingRepo.Count, "bookings")
	}

	if !s.collections.Enabled() {
		return res
	}

	names, err := s.collections.CollectionNames(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list mongo collections")

		res.Mongo = fmt.Sprintf(statusError, err)

		return res
	}

	res.Mongo = statusOK
	res.MongoCollections = names

	return res
}

func (s *serviceImpl) count(ctx context.Context, count func(context.Context, gDto.FilterGroup) (int, error), entity string) int {
	total, err := count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Str("entity", entity).Msg("failed to count rows for dashboard")

		return 0
	}

	return total
}

// HealthStatus returns the Mongo collections and the tail of the report log. A missing log file
// yields no lines.
func (s *serviceImpl) HealthStatus(ctx context.Context) (res dto.HealthStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.HealthStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.Message = healthMessage

	res.Collections, err = s.collections.CollectionNames(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to fetch dashboard: %w", err)
	}

	if res.Collections == nil {
		res.Collections = []string{}
	}

	res.Logs, err = s.sink.Tail(s.cfg.Report.StatusLogLines)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return res, fmt.Errorf("failed to read report log: %w", err)
		}

		err = nil
	}

	if res.Logs == nil {
		res.Logs = []string{}
	}

	return res, nil
}

func (s *serviceImpl) TestAlert(ctx context.Context, req dto.TestAlertRequest) dto.TestAlertResponse {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.TestAlert")
	defer scope.End()

	req.WithDefaults()

	return dto.TestAlertResponse{
		Subject: req.Subject,
		Alerts:  s.alert.Send(ctx, req.Subject, req.Message),
	}
}
