// Package middleware provides HTTP middleware for cross-cutting concerns.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader is the HTTP header name for request ID.
	RequestIDHeader = "X-Request-ID"
	// requestIDKey is the context key for storing request ID.
	requestIDKey = "request_id"
)

// RequestID returns middleware that generates or propagates request IDs.
// An incoming X-Request-ID header is reused; otherwise a new UUID is
// generated. The ID is stored in the context and echoed in the response
// header for client correlation.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(RequestIDHeader, reqID)

			return next(c)
		}
	}
}

// GetRequestID retrieves the request ID from the echo context.
// Returns an empty string if no request ID is set.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return id
	}
	return ""
}
