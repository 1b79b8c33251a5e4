package http

import (
	"net"
	"net/http"

	"loan-qualifier/logger"
)

// RateLimitMiddleware keys buckets on the connection's RemoteAddr only.
// Forwarded headers are client supplied and never pick the bucket.
func RateLimitMiddleware(limiter *RateLimiter, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				writeError(w, log, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
