package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// RequestLogger returns middleware that logs HTTP requests on completion
// with method, path, status, duration, and client info. The log level
// follows the response status: 5xx errors, 4xx warnings, everything else
// info.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Let Echo's error handler produce the response before the
				// status is read for logging.
				c.Error(err)
			}

			duration := time.Since(start)
			req := c.Request()
			res := c.Response()

			var event *zerolog.Event
			switch status := res.Status; {
			case status >= 500:
				event = log.Error()
			case status >= 400:
				event = log.Warn()
			default:
				event = log.Info()
			}

			event.
				Str("request_id", GetRequestID(c)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("query", req.URL.RawQuery).
				Int("status", res.Status).
				Int64("duration_ms", duration.Milliseconds()).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Msg("http_request")

			// The error was already handled via c.Error.
			return nil
		}
	}
}
