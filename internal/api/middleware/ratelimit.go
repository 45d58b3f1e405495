package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/apierr"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/ratelimit"
)

// RateLimit creates per-client rate limiting middleware. A limiter backend
// failure lets the request through; throttling is protection, not a
// correctness requirement.
func RateLimit(limiter ratelimit.Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			ok, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request",
					"client_ip", ip,
					"error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !ok {
				apierr.WriteError(w, apierr.NewTooManyRequestsError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the originating client address, preferring proxy headers
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First entry is the original client
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}

	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
