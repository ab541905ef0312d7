package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "CandleCache/pkg/logger"
)

// RequestLogging emits one structured line per request. 5xx responses log at
// error level, everything else at info.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			status := c.Response().Status
			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", status),
				applogger.Duration("latency", time.Since(start)),
			}
			if status >= 500 {
				l.Error("http request", fields...)
			} else {
				l.Info("http request", fields...)
			}

			return err
		}
	}
}
