package middleware

import (
	"context"
	"errors"
	"garagebook/shared"
	"garagebook/shared/cache"
	"garagebook/shared/constant"
	"garagebook/transport/http/response"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeyRateLimit = "limiter"

// RateLimit counts requests per client in redis over a fixed window. Booking clients see
// the remaining allowance in X-RateLimit-* headers and get Retry-After once refused. A
// redis outage never blocks traffic.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limits := a.config.App.RateLimiter
			if !limits.Enable {
				next.ServeHTTP(w, r)

				return
			}

			count, ok := a.countRequest(r.Context(), clientKey(r), limits.WindowSeconds)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			header := w.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limits.MaxRequests-count)))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			if count > limits.MaxRequests {
				header.Set(constant.RequestHeaderRetryAfter, strconv.Itoa(limits.WindowSeconds))
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// countRequest records one hit and returns the running count. ok is false when redis
// cannot be read or written.
func (a *appMiddleware) countRequest(ctx context.Context, key string, windowSecs int) (int, bool) {
	var count int

	err := a.cache.Get(ctx, key, &count)
	if err != nil && !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("rate limiter cache unavailable")

		return 0, false
	}

	count++

	// refused requests keep counting but do not extend the window
	if count > a.config.App.RateLimiter.MaxRequests {
		return count, true
	}

	if err := a.cache.Save(ctx, key, count, windowSecs); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("rate limiter cache unavailable")

		return 0, false
	}

	return count, true
}

func clientKey(r *http.Request) string {
	agent := r.Header.Get(constant.RequestHeaderUserAgent)
	if agent == "" {
		agent = "unknown"
	}

	return shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), agent)
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket address
// without its port.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constant.RequestHeaderForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")

		return strings.TrimSpace(first)
	}

	if realIP := strings.TrimSpace(r.Header.Get(constant.RequestHeaderRealIP)); realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
