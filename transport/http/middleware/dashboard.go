package middleware

import (
	"crypto/subtle"
	"garagebook/shared/constant"
	"garagebook/shared/failure"
	"garagebook/transport/http/response"
	"net/http"
)

// DashboardKey guards the operator endpoints with REPORT_TOKEN. The key is read from the
// X-Dashboard-Key header, then the key and token query parameters.
func (m *authRoleImpl) DashboardKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "dashboard_key.middleware")

		expected := m.cfg.Report.Token
		provided := dashboardKey(request)

		if expected == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			scope.TraceError(failure.InvalidDashboardKey)
			scope.End()

			response.WithError(writer, failure.InvalidDashboardKey)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func dashboardKey(request *http.Request) string {
	if key := request.Header.Get(constant.RequestHeaderDashboardKey); key != "" {
		return key
	}

	query := request.URL.Query()
	if key := query.Get(constant.RequestParamKey); key != "" {
		return key
	}

	return query.Get(constant.RequestParamToken)
}
