package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "PredVal/pkg/logger"
)

// RequestLogging logs every HTTP request at debug level and failed ones as warnings.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if l == nil {
				return next(c)
			}
			req := c.Request()
			start := time.Now()

			err := next(c)

			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("route", c.Path()),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", c.Response().Status),
				applogger.Duration("latency", time.Since(start)),
			}
			if err != nil {
				l.Warn("http request error", append(fields, applogger.Error(err))...)
				return err
			}
			l.Debug("http request", fields...)
			return nil
		}
	}
}
