package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-finder/internal/domain"
)

// BadRequest writes a 400 Bad Request response with the given error message.
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, &Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    domain.CodeValidationError,
			Message: message,
		},
	})
}

// InvalidRequestBody writes a 400 Bad Request response for malformed request
// bodies.
func InvalidRequestBody(c echo.Context) error {
	return BadRequest(c, "failed to parse request body")
}

// DomainError writes an error response for a domain error, choosing the HTTP
// status from the error code. Non-domain errors become a 500 with a generic
// message so implementation details never leak.
func DomainError(c echo.Context, err error) error {
	detail := &ErrorDetail{
		Code:    domain.CodeInternalError,
		Message: "an unexpected error occurred",
	}
	var coded domain.Coded
	if errors.As(err, &coded) {
		detail.Code = coded.DomainCode()
		detail.Message = coded.DomainMessage()
		detail.Context = coded.DomainContext()
	}

	return c.JSON(statusForCode(detail.Code), &Response{
		Success: false,
		Error:   detail,
	})
}
