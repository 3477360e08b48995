package http

import (
	"context"
	"errors"
	"garagebook/config"
	_ "garagebook/docs" // swagger spec
	"garagebook/infras/otel"
	"garagebook/internal/domains/report/scheduler"
	"garagebook/shared/constant"
	"garagebook/transport/http/middleware"
	"garagebook/transport/http/response"
	"garagebook/transport/http/router"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

func (s ServerState) String() string {
	switch s {
	case ServerStateReady:
		return "ready"
	case ServerStateInGracePeriod:
		return "grace period"
	case ServerStateInCleanupPeriod:
		return "cleanup period"
	default:
		return "starting"
	}
}

const (
	readHeaderTimeout     = 10 * time.Second
	minimumCleanupTimeout = time.Second
)

type healthResponse struct {
	State     string           `json:"state"`
	Scheduler scheduler.Status `json:"scheduler"`
}

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	Scheduler  *scheduler.Scheduler
	Otel       otel.Otel
	state      atomic.Int32
	server     *http.Server
}

func New(cfg *config.Config, r router.Router, appMiddleware middleware.AppMiddleware, reportScheduler *scheduler.Scheduler, otl otel.Otel) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: appMiddleware,
		Scheduler:  reportScheduler,
		Otel:       otl,
	}
}

// Serve runs the first booking report, then serves HTTP until SIGINT or SIGTERM.
// A failed first report is fatal.
func (h *HTTP) Serve() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := h.Scheduler.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start booking report scheduler")
	}

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", h.server.Addr).Msg("Starting up HTTP server.")

		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	h.setState(ServerStateReady)

	<-signalCtx.Done()

	h.shutdown(cancel)
}

// Handler builds the chi router with the global middleware chain.
func (h *HTTP) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer, h.Middleware.Tracing, h.Middleware.CORS(), h.Middleware.RateLimit())

	r.Get("/health", h.health)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	h.Router.SetupRoutes(r)

	return r
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setState(state ServerState) {
	h.state.Store(int32(state))
}

// @Summary Server health
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[healthResponse]
// @Failure 503 {object} response.Message
// @Router /health [get]
func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	switch h.State() {
	case ServerStateReady:
		response.WithJSON(w, http.StatusOK, healthResponse{State: h.State().String(), Scheduler: h.Scheduler.Status()})
	case ServerStateInGracePeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}

func (h *HTTP) shutdown(stopScheduler context.CancelFunc) {
	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")

	if h.Config.Server.Env != constant.ServerEnvDevelopment {
		log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

		h.setState(ServerStateInGracePeriod)

		time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)
	}

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.setState(ServerStateInCleanupPeriod)

	stopScheduler()

	timeout := max(time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second, minimumCleanupTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server gracefully")
	}

	select {
	case <-h.Scheduler.Done():
	case <-ctx.Done():
		log.Warn().Msg("Booking report scheduler did not stop before the cleanup deadline")
	}

	if err := h.Otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
