package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/valpere/verbico/internal/logger"
)

// RequestLoggerMiddleware logs each request once it has been served.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			attrs := []any{
				"module", "http",
				"action", "request",
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
			}

			switch {
			case status >= 500:
				logger.Error("http request", append(attrs, "result", "failed")...)
			case status >= 400:
				logger.Warn("http request", append(attrs, "result", "failed")...)
			default:
				logger.Debug("http request", append(attrs, "result", "ok")...)
			}

			return nil
		}
	}
}
