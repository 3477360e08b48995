package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"garagebook/config"
	"garagebook/infras/otel/mocks"
	"garagebook/internal/domains/booking/model"
	"garagebook/internal/domains/booking/model/dto"
	bookingMocks "garagebook/internal/domains/booking/repository/mocks"
	"garagebook/internal/domains/booking/service"
	userModel "garagebook/internal/domains/user/model"
	userMocks "garagebook/internal/domains/user/repository/mocks"
	cacheMocks "garagebook/shared/cache/mocks"
	"garagebook/shared/constant"
	gDto "garagebook/shared/dto"
	"garagebook/shared/failure"
)

const (
	customerID = "c-1"
	mechanicID = "7f1f4c1e-54a0-4c55-9d89-7b1d5a2d4b11"
)

type fixture struct {
	repo     *bookingMocks.MockBooking
	userRepo *userMocks.MockUser
	cache    *cacheMocks.MockRedisCache
	svc      service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		userRepo: userMocks.NewMockUser(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, f.userRepo, cfg, f.cache, mocks.NewOtel())

	return f
}

func withCaller(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return context.WithValue(ctx, constant.ContextKeyUserEmail, id+"@mobile.test")
}

func sampleBooking() model.Booking {
	return model.Booking{
		ID:          "b-1",
		CustomerID:  customerID,
		Vehicle:     "2019 Corolla",
		ServiceType: "oil change",
		ScheduledAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Status:      constant.BookingStatusPending,
	}
}

func TestBookingService_Create(t *testing.T) {
	req := dto.CreateBookingRequest{
		Vehicle:     "2019 Corolla",
		ServiceType: "oil change",
		ScheduledAt: "2026-03-02T10:00:00Z",
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "created for the caller",
			ctx:  withCaller(customerID, constant.RoleCustomer),
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, customerID, booking.CustomerID)
						assert.Equal(t, constant.BookingStatusPending, booking.Status)

						return nil
					})
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "anonymous caller",
			ctx:       context.Background(),
			req:       req,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "insert error",
			ctx:  withCaller(customerID, constant.RoleCustomer),
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(tt.ctx, tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, customerID, res.CustomerID)
			assert.Equal(t, 60, res.DurationMinutes)
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "bookings.created_at", SortDir: gDto.SortDirDesc}
	filter := dto.ListFilter(constant.BookingStatusPending, "", "")

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
		wantTotal int
	}{
		{
			name: "from store",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Booking{sampleBooking()}, nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(nil).AnyTimes()
			},
			wantTotal: 1,
		},
		{
			name: "from cache",
			setupMock: func(f fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, ok := value.(*dto.GetBookingsResponse)
						require.True(t, ok)
						res.TotalData = 7

						return nil
					})
			},
			wantTotal: 7,
		},
		{
			name: "store error",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return(nil, errors.New("db down"))
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetAll(context.Background(), params, filter)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "owner customer",
			ctx:  withCaller(customerID, constant.RoleCustomer),
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking(), nil)
				f.cache.EXPECT().Save(gomock.Any(), "booking:get:b-1", gomock.Any(), 60).Return(nil).AnyTimes()
			},
		},
		{
			name: "other customer",
			ctx:  withCaller("c-2", constant.RoleCustomer),
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking(), nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "cached booking still checks ownership",
			ctx:  withCaller("c-2", constant.RoleCustomer),
			setupMock: func(f fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.BookingResponse)
						res.ID = "b-1"
						res.CustomerID = customerID

						return nil
					})
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "garage sees any booking",
			ctx:  withCaller(mechanicID, constant.RoleGarage),
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking(), nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "not found",
			ctx:  withCaller(mechanicID, constant.RoleAdmin),
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(tt.ctx, "b-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "b-1", res.ID)
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	status := constant.BookingStatusInProgress
	mechanic := mechanicID
	bad := "not-a-date"

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateBookingRequest{},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "booking missing",
			req:  dto.UpdateBookingRequest{Status: &status},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "status update",
			req:  dto.UpdateBookingRequest{Status: &status},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil).AnyTimes()
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "assign garage mechanic",
			req:  dto.UpdateBookingRequest{MechanicID: &mechanic},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: mechanicID, Role: constant.RoleGarage}, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &mechanic, fields[model.FieldMechanicID])

						return nil
					})
				f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "assign customer as mechanic",
			req:  dto.UpdateBookingRequest{MechanicID: &mechanic},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: mechanicID, Role: constant.RoleCustomer}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "assign unknown mechanic",
			req:  dto.UpdateBookingRequest{MechanicID: &mechanic},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unassign skips mechanic lookup",
			req:  dto.UpdateBookingRequest{MechanicID: &mechanic, UnassignMechanic: true},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "bad schedule",
			req:  dto.UpdateBookingRequest{ScheduledAt: &bad},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "store error",
			req:  dto.UpdateBookingRequest{Status: &status},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(withCaller(mechanicID, constant.RoleGarage), tt.req, "b-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "deleted",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "exist error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(withCaller("admin-1", constant.RoleAdmin), "b-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}
