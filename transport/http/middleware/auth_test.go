package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"garagebook/config"
	"garagebook/infras/jwt"
	jwtMocks "garagebook/infras/jwt/mocks"
	"garagebook/infras/otel/mocks"
	"garagebook/permissions"
	"garagebook/shared/constant"
	"garagebook/transport/http/middleware"
)

const dashboardToken = "operator-secret"

func newServer(t *testing.T, setupMock func(jwtService *jwtMocks.MockJWT), cfg *config.Config) http.Handler {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)

	if setupMock != nil {
		setupMock(jwtService)
	}

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), permissions.Get(), cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Role", r.Context().Value(constant.ContextKeyUserRole).(string))
		w.WriteHeader(http.StatusNoContent)
	}
	open := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}

	router := chi.NewRouter()

	router.Group(func(root chi.Router) {
		root.Use(authRole.DashboardKey)
		root.Get("/health/status", open)
	})

	router.Route("/v1", func(v1 chi.Router) {
		v1.Group(func(secured chi.Router) {
			secured.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)

			secured.Route("/auth", func(auth chi.Router) {
				auth.Post("/login", open)
			})

			secured.Route("/bookings", func(bookings chi.Router) {
				bookings.Get("/my", ok)
				bookings.Get("/assigned", ok)
				bookings.Delete("/{id}", open)
			})
		})
	})

	return router
}

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"
	cfg.Report.Token = dashboardToken

	return cfg
}

func claimsFor(role string) *jwt.Claims {
	return &jwt.Claims{UserID: "u-1", Email: role + "@mobile.test", Role: role, TokenID: "t-1"}
}

func TestAuthRole_Auth(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		target    string
		headers   map[string]string
		setupMock func(jwtService *jwtMocks.MockJWT)
		wantCode  int
		wantRole  string
		wantError string
	}{
		{
			name:     "public route skips the token check",
			method:   http.MethodPost,
			target:   "/v1/auth/login",
			wantCode: http.StatusNoContent,
		},
		{
			name:     "missing authorization header",
			method:   http.MethodGet,
			target:    "/v1/bookings/my",
			wantCode:  http.StatusUnauthorized,
			wantError: "missing bearer token",
		},
		{
			name:     "malformed authorization header",
			method:   http.MethodGet,
			target:   "/v1/bookings/my",
			headers:   map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode:  http.StatusUnauthorized,
			wantError: "authorization header must be 'Bearer <token>'",
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			target:  "/v1/bookings/my",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer expired"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode:  http.StatusUnauthorized,
			wantError: "session expired, please log in again",
		},
		{
			name:    "claims without a role",
			method:  http.MethodGet,
			target:  "/v1/bookings/my",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer partial"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "partial", jwt.AccessToken).Return(claimsFor(""), nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "any role may list its own bookings",
			method:  http.MethodGet,
			target:  "/v1/bookings/my",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer customer"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "customer", jwt.AccessToken).Return(claimsFor(constant.RoleCustomer), nil)
			},
			wantCode: http.StatusNoContent,
			wantRole: constant.RoleCustomer,
		},
		{
			name:    "garage sees assigned bookings",
			method:  http.MethodGet,
			target:  "/v1/bookings/assigned",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer garage"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "garage", jwt.AccessToken).Return(claimsFor(constant.RoleGarage), nil)
			},
			wantCode: http.StatusNoContent,
			wantRole: constant.RoleGarage,
		},
		{
			name:    "customer cannot see assigned bookings",
			method:  http.MethodGet,
			target:  "/v1/bookings/assigned",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer customer"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "customer", jwt.AccessToken).Return(claimsFor(constant.RoleCustomer), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "garage cannot delete bookings",
			method:  http.MethodDelete,
			target:  "/v1/bookings/b-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer garage"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "garage", jwt.AccessToken).Return(claimsFor(constant.RoleGarage), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "internal api key bypasses jwt",
			method:   http.MethodDelete,
			target:   "/v1/bookings/b-1",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusNoContent,
		},
		{
			name:     "wrong api key",
			method:   http.MethodDelete,
			target:   "/v1/bookings/b-1",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newServer(t, tt.setupMock, newConfig())

			req := httptest.NewRequestWithContext(context.Background(), tt.method, tt.target, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantRole != "" {
				assert.Equal(t, tt.wantRole, rec.Header().Get("X-Role"))
			}

			if tt.wantError != "" {
				var body struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body.Error)
			}
		})
	}
}

func TestAuthRole_DashboardKey(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		target   string
		header   string
		wantCode int
	}{
		{name: "header", token: dashboardToken, target: "/health/status", header: dashboardToken, wantCode: http.StatusNoContent},
		{name: "key query", token: dashboardToken, target: "/health/status?key=" + dashboardToken, wantCode: http.StatusNoContent},
		{name: "token query", token: dashboardToken, target: "/health/status?token=" + dashboardToken, wantCode: http.StatusNoContent},
		{name: "header wins over query", token: dashboardToken, target: "/health/status?key=" + dashboardToken, header: "stale", wantCode: http.StatusUnauthorized},
		{name: "wrong key", token: dashboardToken, target: "/health/status?key=nope", wantCode: http.StatusUnauthorized},
		{name: "missing key", token: dashboardToken, target: "/health/status", wantCode: http.StatusUnauthorized},
		{name: "unconfigured token rejects everything", token: "", target: "/health/status?key=", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig()
			cfg.Report.Token = tt.token

			server := newServer(t, nil, cfg)

			req := httptest.NewRequestWithContext(context.Background(), http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderDashboardKey, tt.header)
			}

			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
