// Package response provides standardized HTTP response builders for the
// flight finder API. It centralizes response formatting and the mapping from
// domain error codes to HTTP statuses.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-finder/internal/domain"
)

// Response represents a standardized API response envelope.
type Response struct {
	// Success indicates whether the request was successful
	Success bool `json:"success"`

	// Data contains the response payload (for successful responses)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (for error responses)
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Context contains additional error fields, e.g. the offending field for
	// validation errors or the provider for back-end failures
	Context map[string]any `json:"context,omitempty"`
}

// OK writes a 200 OK response wrapping data in the success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, &Response{
		Success: true,
		Data:    data,
	})
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
	})
}

// statusForCode maps domain error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case domain.CodeValidationError:
		return http.StatusBadRequest
	case domain.CodeRateLimitError:
		return http.StatusTooManyRequests
	case domain.CodeTimeoutError:
		return http.StatusGatewayTimeout
	case domain.CodeProviderError, domain.CodeSearchError:
		return http.StatusServiceUnavailable
	case domain.CodeConfigurationError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
