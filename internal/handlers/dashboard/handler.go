package dashboard

import (
	"bytes"
	"errors"
	"garagebook/infras/otel"
	dashboardService "garagebook/internal/domains/dashboard/service"
	"garagebook/internal/domains/report/model/dto"
	reportService "garagebook/internal/domains/report/service"
	"garagebook/shared/constant"
	"garagebook/shared/failure"
	"garagebook/shared/validator"
	"garagebook/transport/http/response"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// The test alert takes at most a subject and a short message.
const maxTestAlertBodyBytes = 64 << 10

// Handler serves the operator endpoints. Every route is expected behind the dashboard key middleware.
type Handler struct {
	dashboard dashboardService.Dashboard
	report    reportService.Report
	otel      otel.Otel
}

func New(dashboard dashboardService.Dashboard, report reportService.Report, otel otel.Otel) Handler {
	return Handler{
		dashboard: dashboard,
		report:    report,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/report", handler.GetLatestReport)
		routerGroup.Post("/report", handler.GenerateReport)
		routerGroup.Get("/reports", handler.GetReports)
		routerGroup.Get("/db", handler.GetDatabaseStatus)
		routerGroup.Post("/test-alert", handler.SendTestAlert)
	})
}

func (handler *Handler) HealthRouter(router chi.Router) {
	router.Get("/health/status", handler.GetHealthStatus)
}

// GetLatestReport returns the most recent booking report.
// @Summary Latest booking report
// @Tags Dashboard
// @Produce json
// @Param X-Dashboard-Key header string false "Dashboard key"
// @Param key query string false "Dashboard key"
// @Success 200 {object} response.Data[dto.ReportResponse] "Latest report"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/dashboard/report [get]
func (handler *Handler) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLatestReport")
	defer scope.End()

	report, err := handler.report.Latest(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get latest report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

// GenerateReport runs a one-off report outside the schedule.
// @Summary Generate a booking report now
// @Tags Dashboard
// @Produce json
// @Param X-Dashboard-Key header string false "Dashboard key"
// @Success 201 {object} response.Data[dto.CycleResponse] "Generated report and alert outcomes"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/report [post]
func (handler *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GenerateReport")
	defer scope.End()

	cycle, err := handler.report.GenerateOnDemand(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate report on demand")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("On-demand report generated")

	response.WithJSON(w, http.StatusCreated, cycle)
}

// GetReports lists stored reports, newest first.
// @Summary Booking report history
// @Tags Dashboard
// @Produce json
// @Param X-Dashboard-Key header string false "Dashboard key"
// @Param limit query int false "Number of reports (default 20, max 200)"
// @Success 200 {object} response.Data[dto.GetReportsResponse] "Report history"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/reports [get]
func (handler *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReports")
	defer scope.End()

	limit, _ := strconv.Atoi(r.URL.Query().Get(constant.RequestParamLimit))

	reports, err := handler.report.History(ctx, limit)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get report history")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reports)
}

// GetDatabaseStatus reports store connectivity and row counts.
// @Summary Database status
// @Tags Dashboard
// @Produce json
// @Param X-Dashboard-Key header string false "Dashboard key"
// @Success 200 {object} response.Data[dto.DatabaseStatusResponse] "Database status"
// @Failure 401 {object} response.Error
// @Router /v1/dashboard/db [get]
func (handler *Handler) GetDatabaseStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDatabaseStatus")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.dashboard.DatabaseStatus(ctx))
}

// SendTestAlert pushes a manual alert through every configured channel.
// @Summary Send a test alert
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param X-Dashboard-Key header string false "Dashboard key"
// @Param request body dto.TestAlertRequest false "Optional subject and message"
// @Success 200 {object} response.Data[dto.TestAlertResponse] "Per-channel outcomes"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 413 {object} response.Error
// @Router /v1/dashboard/test-alert [post]
func (handler *Handler) SendTestAlert(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendTestAlert")
	defer scope.End()

	req := dto.TestAlertRequest{}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTestAlertBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = failure.PayloadTooLarge
		} else {
			err = failure.BadRequest(err)
		}

		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	// The body is optional.
	if len(bytes.TrimSpace(body)) > 0 {
		if err := validator.Validate(bytes.NewReader(body), &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	res := handler.dashboard.TestAlert(ctx, req)

	scope.AddEvent("Test alert sent")

	response.WithJSON(w, http.StatusOK, res)
}

// GetHealthStatus returns the Mongo collections and the tail of the report log.
// @Summary Backend status
// @Tags Health
// @Produce json
// @Param token query string true "Dashboard key"
// @Success 200 {object} response.Data[dto.HealthStatusResponse] "Backend status"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /health/status [get]
func (handler *Handler) GetHealthStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHealthStatus")
	defer scope.End()

	status, err := handler.dashboard.HealthStatus(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get health status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}
