//go:build wireinject
// +build wireinject

package di

import (
	"garagebook/config"
	"garagebook/infras/jwt"
	"garagebook/infras/kafka"
	"garagebook/infras/mailer"
	"garagebook/infras/mongo"
	"garagebook/infras/otel"
	"garagebook/infras/postgres"
	"garagebook/infras/redis"
	"garagebook/infras/s3"
	"garagebook/infras/slack"
	"garagebook/shared/cache"
	"garagebook/shared/logger"
	"garagebook/transport/http"
	"garagebook/transport/http/middleware"
	"garagebook/transport/http/router"

	alertService "garagebook/internal/domains/alert/service"
	authService "garagebook/internal/domains/auth/service"
	bookingRepository "garagebook/internal/domains/booking/repository"
	bookingService "garagebook/internal/domains/booking/service"
	dashboardService "garagebook/internal/domains/dashboard/service"
	reportRepository "garagebook/internal/domains/report/repository"
	"garagebook/internal/domains/report/scheduler"
	reportService "garagebook/internal/domains/report/service"
	userRepository "garagebook/internal/domains/user/repository"
	userService "garagebook/internal/domains/user/service"
	authHandler "garagebook/internal/handlers/auth"
	bookingHandler "garagebook/internal/handlers/booking"
	dashboardHandler "garagebook/internal/handlers/dashboard"
	userHandler "garagebook/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	mongo.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var alertChannels = wire.NewSet(
	mailer.New,
	slack.New,
	kafka.NewAlertPublisher,
	provideAlertChannels,
)

var middlewares = wire.NewSet(
	providePermissions,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	logger.NewReportSink,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var alertDomain = wire.NewSet(
	alertService.New,
)

var reportDomain = wire.NewSet(
	reportRepository.New,
	reportService.New,
	scheduler.New,
	wire.Bind(new(scheduler.Reporter), new(reportService.Report)),
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
	wire.Bind(new(dashboardService.Pinger), new(*postgres.Connection)),
	wire.Bind(new(dashboardService.Collections), new(*mongo.Connection)),
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	bookingDomain,
	alertDomain,
	reportDomain,
	dashboardDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	bookingHandler.New,
	dashboardHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		alertChannels,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
