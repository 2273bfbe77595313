package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// Setup registers all middleware on the Echo instance in order:
//  1. RequestID, so every later log line carries the ID
//  2. RequestLogger
//  3. Recover, wrapping the handlers
//
// Call this before registering routes.
func Setup(e *echo.Echo, log *logger.Logger) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recover(log))
}

// Chain returns all middleware as a slice for use with route groups.
func Chain(log *logger.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(log),
		Recover(log),
	}
}
