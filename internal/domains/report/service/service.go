package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"garagebook/config"
	"garagebook/infras/otel"
	"garagebook/infras/s3"
	alertService "garagebook/internal/domains/alert/service"
	bookingModel "garagebook/internal/domains/booking/model"
	bookingRepo "garagebook/internal/domains/booking/repository"
	"garagebook/internal/domains/report/aggregator"
	"garagebook/internal/domains/report/model"
	"garagebook/internal/domains/report/model/dto"
	"garagebook/internal/domains/report/repository"
	userModel "garagebook/internal/domains/user/model"
	userRepo "garagebook/internal/domains/user/repository"
	"garagebook/shared/cache"
	"garagebook/shared/constant"
	gDto "garagebook/shared/dto"
	"garagebook/shared/failure"
	"garagebook/shared/logger"
	"garagebook/shared/timezone"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheLatestReport = "report:latest"

	failureSubject   = "Booking report generation failed"
	archiveTimestamp = "20060102T150405Z"

	failureAlertTimeout = 30 * time.Second
)

type Report interface {
	// Generate runs one report cycle. previous is the report of the last cycle and only feeds the
	// conflict delta.
	Generate(ctx context.Context, previous *model.Report, isPeriodic bool) (model.Cycle, error)
	GenerateOnDemand(ctx context.Context) (dto.CycleResponse, error)
	Latest(ctx context.Context) (dto.ReportResponse, error)
	History(ctx context.Context, limit int) (dto.GetReportsResponse, error)
}

type serviceImpl struct {
	userRepo    userRepo.User
	bookingRepo bookingRepo.Booking
	history     repository.History
	cache       cache.RedisCache
	s3          s3.S3
	alert       alertService.Alert
	sink        logger.ReportSink
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	userRepo userRepo.User,
	bookingRepo bookingRepo.Booking,
	history repository.History,
	cache cache.RedisCache,
	s3 s3.S3,
	alert alertService.Alert,
	sink logger.ReportSink,
	cfg *config.Config,
	otel otel.Otel,
) Report {
	return &serviceImpl{
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		history:     history,
		cache:       cache,
		s3:          s3,
		alert:       alert,
		sink:        sink,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) Generate(ctx context.Context, previous *model.Report, isPeriodic bool) (cycle model.Cycle, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelReportScopeName, constant.OtelReportScopeName+".Generate")
	defer scope.End()

	scope.SetAttribute("report.periodic", isPeriodic)

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Bool("periodic", isPeriodic).Msg("failed to fetch report snapshot")

		s.writeSink(fmt.Sprintf("Report generation failed: %v", err))

		// The cycle context may be the one that just expired.
		alertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureAlertTimeout)
		defer cancel()

		cycle.Alerts = s.alert.Send(alertCtx, failureSubject, err.Error())

		return cycle, fmt.Errorf("failed to fetch report snapshot: %w", err)
	}

	report := aggregator.BuildReport(snapshot, isPeriodic, timezone.Now())
	lines := report.Summary(previous)

	cycle.Report = report
	scope.SetAttribute("report.conflicts", report.ConflictCount())

	if report.ConflictCount() > 0 {
		cycle.Alerts = s.alert.Send(ctx, report.AlertSubject(), strings.Join(lines, "\n"))
	}

	s.writeSink(lines...)
	s.persist(ctx, report, lines)

	log.Info().
		Bool("periodic", isPeriodic).
		Int("users", report.TotalUsers).
		Int("bookings", report.TotalBookings).
		Int("upcoming", report.UpcomingBookings).
		Int("conflicts", report.ConflictCount()).
		Msg("booking report generated")

	return cycle, nil
}

// GenerateOnDemand compares against the last stored report. The scheduler keeps its own chain.
func (s *serviceImpl) GenerateOnDemand(ctx context.Context) (res dto.CycleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelReportScopeName, constant.OtelReportScopeName+".GenerateOnDemand")
	defer scope.End()

	var previous *model.Report

	latest, found, err := s.latest(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("previous report unavailable, generating without delta")
	}

	if found {
		previous = &latest
	}

	cycle, err := s.Generate(ctx, previous, false)
	if err != nil {
		return res, failure.InternalError(err)
	}

	res.FromModel(cycle)

	return res, nil
}

func (s *serviceImpl) Latest(ctx context.Context) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelReportScopeName, constant.OtelReportScopeName+".Latest")
	defer scope.End()

	report, found, err := s.latest(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load latest report")

		return res, failure.ReportUnavailable
	}

	if !found {
		return res, failure.NotFound("no report has been generated yet")
	}

	res.FromModel(report)

	return res, nil
}

func (s *serviceImpl) History(ctx context.Context, limit int) (res dto.GetReportsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelReportScopeName, constant.OtelReportScopeName+".History")
	defer scope.End()

	reports, err := s.history.List(ctx, limit)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list reports")

		return res, fmt.Errorf("failed to list reports: %w", err)
	}

	res.FromModels(reports)

	return res, nil
}

func (s *serviceImpl) latest(ctx context.Context) (model.Report, bool, error) {
	var report model.Report

	if err := s.cache.Get(ctx, cacheLatestReport, &report); err == nil {
		return report, true, nil
	}

	report, found, err := s.history.Latest(ctx)
	if err != nil {
		return report, false, fmt.Errorf("failed to get latest report: %w", err)
	}

	return report, found, nil
}

func (s *serviceImpl) snapshot(ctx context.Context) (model.Snapshot, error) {
	users, err := s.userRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  userModel.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}, gDto.FilterGroup{})
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to get users: %w", err)
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  bookingModel.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}, gDto.FilterGroup{})
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to get bookings: %w", err)
	}

	return model.Snapshot{Users: users, Bookings: bookings}, nil
}

func (s *serviceImpl) writeSink(lines ...string) {
	if err := s.sink.Write(lines...); err != nil {
		log.Error().Err(err).Str("path", s.sink.Path()).Msg("failed to write report log")
	}
}

// persist stores the report in every configured store. Failures are logged only.
func (s *serviceImpl) persist(ctx context.Context, report model.Report, lines []string) {
	if err := s.cache.Save(ctx, cacheLatestReport, report, 0); err != nil {
		log.Error().Err(err).Msg("failed to cache latest report")
	}

	if err := s.history.Insert(ctx, report); err != nil {
		log.Error().Err(err).Msg("failed to store report history")
	}

	if !s.cfg.Report.ArchiveEnable {
		return
	}

	fileName := report.GeneratedAt.UTC().Format(archiveTimestamp) + ".txt"

	url, err := s.s3.UploadFileBytes(ctx, "", s.cfg.Report.ArchiveDir, fileName, constant.ContentTypeTextPlain, []byte(strings.Join(lines, "\n")+"\n"))
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("failed to archive report")

		return
	}

	log.Info().Str("url", url).Msg("report archived")
}
