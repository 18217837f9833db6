package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jackvpt/hhguesthouses-api/internal/api/metrics"
)

// RouteLimiter is the slice of the Redis limiter this middleware needs.
type RouteLimiter interface {
	Allow(ctx context.Context, route, caller string) (bool, error)
}

// RateLimit throttles a route per client IP. Limiter failures let the request
// through; an unavailable Redis must not take down the login path.
func RateLimit(limiter RouteLimiter, route string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), route, c.RealIP())
			if err != nil {
				c.Logger().Warnf("rate limiter unavailable: %v", err)
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			}
			return next(c)
		}
	}
}
