package middleware

import (
	"fmt"
	"net"
	"net/http"

	internal_errors "github.com/itchan-dev/shopkeeper/shared/errors"
	"github.com/itchan-dev/shopkeeper/shared/logger"
	"github.com/itchan-dev/shopkeeper/shared/middleware/ratelimiter"
	"github.com/itchan-dev/shopkeeper/shared/utils"
)

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, internal_errors.Validation(err.Error()))
				return
			}
			if !rl.Allow(identity) {
				logger.Log.Warn("rate limit exceeded", "identity", identity, "path", r.URL.Path)
				utils.WriteErrorAndStatusCode(w, &internal_errors.ErrorWithStatusCode{
					Message:    "Rate limit exceeded, try again later",
					StatusCode: http.StatusTooManyRequests,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetIP extracts the real client IP from RemoteAddr
// Does NOT trust X-Real-IP or X-Forwarded-For headers (no reverse proxy)
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// Fallback: if RemoteAddr doesn't have port, use it directly
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	return ip, nil
}
