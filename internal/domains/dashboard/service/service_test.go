package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"garagebook/config"
	"garagebook/infras/otel/mocks"
	alertModel "garagebook/internal/domains/alert/model"
	alertMocks "garagebook/internal/domains/alert/service/mocks"
	bookingMocks "garagebook/internal/domains/booking/repository/mocks"
	"garagebook/internal/domains/dashboard/service"
	dashboardMocks "garagebook/internal/domains/dashboard/service/mocks"
	"garagebook/internal/domains/report/model/dto"
	userMocks "garagebook/internal/domains/user/repository/mocks"
	loggerMocks "garagebook/shared/logger/mocks"
)

type fixture struct {
	postgres    *dashboardMocks.MockPinger
	collections *dashboardMocks.MockCollections
	users       *userMocks.MockUser
	bookings    *bookingMocks.MockBooking
	alert       *alertMocks.MockAlert
	sink        *loggerMocks.MockReportSink
	svc         service.Dashboard
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		postgres:    dashboardMocks.NewMockPinger(ctrl),
		collections: dashboardMocks.NewMockCollections(ctrl),
		users:       userMocks.NewMockUser(ctrl),
		bookings:    bookingMocks.NewMockBooking(ctrl),
		alert:       alertMocks.NewMockAlert(ctrl),
		sink:        loggerMocks.NewMockReportSink(ctrl),
	}

	cfg := &config.Config{}
	cfg.Report.StatusLogLines = 50

	f.svc = service.New(f.postgres, f.collections, f.users, f.bookings, f.alert, f.sink, cfg, mocks.NewOtel())

	return f
}

func TestDashboardService_DatabaseStatus(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		expected  dto.DatabaseStatusResponse
	}{
		{
			name: "all stores up",
			setupMock: func(f fixture) {
				f.postgres.EXPECT().Ping(gomock.Any()).Return(nil)
				f.users.EXPECT().Count(gomock.Any(), gomock.Any()).Return(4, nil)
				f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(9, nil)
				f.collections.EXPECT().Enabled().Return(true)
				f.collections.EXPECT().CollectionNames(gomock.Any()).Return([]string{"reports"}, nil)
			},
			expected: dto.DatabaseStatusResponse{
				Postgres:         "ok",
				Mongo:            "ok",
				Users:            4,
				Bookings:         9,
				MongoCollections: []string{"reports"},
			},
		},
		{
			name: "postgres down skips counts",
			setupMock: func(f fixture) {
				f.postgres.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
				f.collections.EXPECT().Enabled().Return(false)
			},
			expected: dto.DatabaseStatusResponse{
				Postgres:         "error: connection refused",
				Mongo:            "disabled",
				MongoCollections: []string{},
			},
		},
		{
			name: "count error reports zero",
			setupMock: func(f fixture) {
				f.postgres.EXPECT().Ping(gomock.Any()).Return(nil)
				f.users.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("timeout"))
				f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				f.collections.EXPECT().Enabled().Return(true)
				f.collections.EXPECT().CollectionNames(gomock.Any()).Return(nil, errors.New("auth failed"))
			},
			expected: dto.DatabaseStatusResponse{
				Postgres:         "ok",
				Mongo:            "error: auth failed",
				Bookings:         2,
				MongoCollections: []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			assert.Equal(t, tt.expected, f.svc.DatabaseStatus(context.Background()))
		})
	}
}

func TestDashboardService_HealthStatus(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
		wantLogs  []string
	}{
		{
			name: "collections and log tail",
			setupMock: func(f fixture) {
				f.collections.EXPECT().CollectionNames(gomock.Any()).Return([]string{"reports"}, nil)
				f.sink.EXPECT().Tail(50).Return([]string{"[2026-03-02T10:00:00Z] Mechanic conflicts: 0"}, nil)
			},
			wantLogs: []string{"[2026-03-02T10:00:00Z] Mechanic conflicts: 0"},
		},
		{
			name: "missing log file",
			setupMock: func(f fixture) {
				f.collections.EXPECT().CollectionNames(gomock.Any()).Return([]string{}, nil)
				f.sink.EXPECT().Tail(50).Return(nil, fmt.Errorf("opening report log: %w", os.ErrNotExist))
			},
			wantLogs: []string{},
		},
		{
			name: "unreadable log file",
			setupMock: func(f fixture) {
				f.collections.EXPECT().CollectionNames(gomock.Any()).Return([]string{}, nil)
				f.sink.EXPECT().Tail(50).Return(nil, os.ErrPermission)
			},
			wantErr: true,
		},
		{
			name: "mongo error",
			setupMock: func(f fixture) {
				f.collections.EXPECT().CollectionNames(gomock.Any()).Return(nil, errors.New("server selection timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.HealthStatus(context.Background())

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "backend is running", res.Message)
			assert.NotNil(t, res.Collections)
			assert.Equal(t, tt.wantLogs, res.Logs)
		})
	}
}

func TestDashboardService_TestAlert(t *testing.T) {
	f := newFixture(t)

	outcomes := []alertModel.Outcome{
		{Channel: "email", Status: alertModel.StatusSkipped},
		{Channel: "slack", Status: alertModel.StatusSent},
	}

	f.alert.EXPECT().
		Send(gomock.Any(), "Test alert", "This is a manual test alert from the dashboard.").
		Return(outcomes)

	res := f.svc.TestAlert(context.Background(), dto.TestAlertRequest{})

	assert.Equal(t, "Test alert", res.Subject)
	assert.Equal(t, outcomes, res.Alerts)
}
