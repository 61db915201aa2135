package http

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/web-bootstrap/internal/logger"
	"github.com/MKhiriev/web-bootstrap/internal/utils"
)

// withRateLimit rejects requests beyond rps with 429 using one token bucket
// shared by all clients. A non-positive rps disables the stage.
func withRateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.FromRequest(r).Warn().Msg("rate limit exceeded")
				utils.WriteError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
