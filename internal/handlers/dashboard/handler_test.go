package dashboard_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"garagebook/infras/otel/mocks"
	alertModel "garagebook/internal/domains/alert/model"
	dashboardMocks "garagebook/internal/domains/dashboard/service/mocks"
	"garagebook/internal/domains/report/model/dto"
	reportMocks "garagebook/internal/domains/report/service/mocks"
	"garagebook/internal/handlers/dashboard"
	"garagebook/shared/failure"
)

type fixture struct {
	dashboard *dashboardMocks.MockDashboard
	report    *reportMocks.MockReport
	router    http.Handler
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		dashboard: dashboardMocks.NewMockDashboard(ctrl),
		report:    reportMocks.NewMockReport(ctrl),
	}

	handler := dashboard.New(f.dashboard, f.report, mocks.NewOtel())

	router := chi.NewRouter()
	handler.HealthRouter(router)
	handler.Router(router)

	f.router = router

	return f
}

func (f fixture) serve(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_GetLatestReport(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "latest report",
			setupMock: func(f fixture) {
				f.report.EXPECT().Latest(gomock.Any()).Return(dto.ReportResponse{Kind: "periodic", ConflictCount: 2}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "nothing generated yet",
			setupMock: func(f fixture) {
				f.report.EXPECT().Latest(gomock.Any()).Return(dto.ReportResponse{}, failure.NotFound("no report found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "history unavailable",
			setupMock: func(f fixture) {
				f.report.EXPECT().Latest(gomock.Any()).Return(dto.ReportResponse{}, failure.ReportUnavailable)
			},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			rec := f.serve(http.MethodGet, "/dashboard/report", "")

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_GenerateReport(t *testing.T) {
	f := newFixture(t)

	f.report.EXPECT().GenerateOnDemand(gomock.Any()).Return(dto.CycleResponse{
		Report: dto.ReportResponse{Kind: "one-off"},
		Alerts: []alertModel.Outcome{},
	}, nil)

	rec := f.serve(http.MethodPost, "/dashboard/report", "")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"one-off"`)
}

func TestHandler_GetReports(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantLimit int
	}{
		{name: "explicit limit", target: "/dashboard/reports?limit=5", wantLimit: 5},
		{name: "garbage limit", target: "/dashboard/reports?limit=lots", wantLimit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.report.EXPECT().History(gomock.Any(), tt.wantLimit).Return(dto.GetReportsResponse{Reports: []dto.ReportResponse{}}, nil)

			assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, tt.target, "").Code)
		})
	}
}

func TestHandler_GetDatabaseStatus(t *testing.T) {
	f := newFixture(t)

	f.dashboard.EXPECT().DatabaseStatus(gomock.Any()).Return(dto.DatabaseStatusResponse{Postgres: "ok", Mongo: "disabled", Users: 3})

	rec := f.serve(http.MethodGet, "/dashboard/db", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.DatabaseStatusResponse `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.Users)
	assert.Equal(t, "disabled", body.Data.Mongo)
}

func TestHandler_SendTestAlert(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "empty body uses defaults",
			body: "",
			setupMock: func(f fixture) {
				f.dashboard.EXPECT().TestAlert(gomock.Any(), dto.TestAlertRequest{}).Return(dto.TestAlertResponse{Subject: "Test alert"})
			},
			wantCode: http.StatusOK,
		},
		{
			name: "custom subject",
			body: `{"subject":"Pager check"}`,
			setupMock: func(f fixture) {
				f.dashboard.EXPECT().TestAlert(gomock.Any(), dto.TestAlertRequest{Subject: "Pager check"}).Return(dto.TestAlertResponse{Subject: "Pager check"})
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "malformed body",
			body:      `{"subject":`,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "oversized body is refused unread",
			body:      `{"subject":"Pager check","message":"` + strings.Repeat("x", 128<<10) + `"}`,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			assert.Equal(t, tt.wantCode, f.serve(http.MethodPost, "/dashboard/test-alert", tt.body).Code)
		})
	}
}

func TestHandler_GetHealthStatus(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "running",
			setupMock: func(f fixture) {
				f.dashboard.EXPECT().HealthStatus(gomock.Any()).Return(dto.HealthStatusResponse{Message: "backend is running"}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "mongo down",
			setupMock: func(f fixture) {
				f.dashboard.EXPECT().HealthStatus(gomock.Any()).Return(dto.HealthStatusResponse{}, errors.New("server selection timeout"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			assert.Equal(t, tt.wantCode, f.serve(http.MethodGet, "/health/status?token=secret", "").Code)
		})
	}
}
