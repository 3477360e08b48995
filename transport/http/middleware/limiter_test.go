package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"garagebook/config"
	"garagebook/infras/otel/mocks"
	"garagebook/shared/cache"
	cacheMocks "garagebook/shared/cache/mocks"
	"garagebook/shared/constant"
	"garagebook/transport/http/middleware"
)

func TestAppMiddleware_RateLimit(t *testing.T) {
	const key = "limiter:10.0.0.1:garage-app/2.3"

	tests := []struct {
		name          string
		enable        bool
		setupMock     func(redisCache *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
		wantRetry     string
	}{
		{
			name:      "disabled",
			enable:    false,
			setupMock: func(_ *cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusNoContent,
		},
		{
			name:   "first request in window",
			enable: true,
			setupMock: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(cache.Nil)
				redisCache.EXPECT().Save(gomock.Any(), key, 1, 60).Return(nil)
			},
			wantCode:      http.StatusNoContent,
			wantRemaining: "1",
		},
		{
			name:   "over the limit",
			enable: true,
			setupMock: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), key, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
					*value.(*int) = 2

					return nil
				})
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
			wantRetry:     "60",
		},
		{
			name:   "last allowed request",
			enable: true,
			setupMock: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), key, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
					*value.(*int) = 1

					return nil
				})
				redisCache.EXPECT().Save(gomock.Any(), key, 2, 60).Return(nil)
			},
			wantCode:      http.StatusNoContent,
			wantRemaining: "0",
		},
		{
			name:   "cache write failure lets traffic through",
			enable: true,
			setupMock: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(cache.Nil)
				redisCache.EXPECT().Save(gomock.Any(), key, 1, 60).Return(errors.New("read only replica"))
			},
			wantCode: http.StatusNoContent,
		},
		{
			name:   "cache outage lets traffic through",
			enable: true,
			setupMock: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(redisCache)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enable
			cfg.App.RateLimiter.MaxRequests = 2
			cfg.App.RateLimiter.WindowSeconds = 60

			app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache)
			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequestWithContext(context.Background(), http.MethodGet, "/v1/bookings", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1, 172.16.0.4")
			req.Header.Set(constant.RequestHeaderUserAgent, "garage-app/2.3")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
			assert.Equal(t, tt.wantRetry, rec.Header().Get(constant.RequestHeaderRetryAfter))
		})
	}
}
