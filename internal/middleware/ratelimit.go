package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/roomescape/reservation-service/internal/config"
)

// LoginRateLimit returns a fixed-window rate limiter keyed by client IP,
// backed by Redis so the window survives restarts. It is mounted on the
// login route only: failed credential guessing is the abuse case worth
// limiting in this service. When the limiter is disabled or no Redis
// client is available the middleware is a no-op, and Redis errors fail
// open so an unavailable cache never blocks logins.
func LoginRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			window := time.Now().Unix() / int64(cfg.Window.Seconds())
			key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, c.RealIP(), window)

			ctx := c.Request().Context()
			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}
			if n > int64(cfg.Limit) {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"title":  "요청이 너무 많습니다.",
					"detail": "잠시 후 다시 시도해 주세요.",
				})
			}
			return next(c)
		}
	}
}
