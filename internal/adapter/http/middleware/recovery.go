package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// Recover returns middleware that recovers from panics in the handler chain.
// It logs the panic with a stack trace and returns a 500 with the uniform
// error shape, so the server keeps handling subsequent requests.
func Recover(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					var panicMsg string
					if err, ok := r.(error); ok {
						panicMsg = err.Error()
					} else {
						panicMsg = fmt.Sprintf("%v", r)
					}

					log.Error().
						Str("request_id", GetRequestID(c)).
						Str("panic", panicMsg).
						Str("stack", string(debug.Stack())).
						Msg("panic_recovered")

					if !c.Response().Committed {
						_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
							"success": false,
							"error": map[string]string{
								"code":    domain.CodeInternalError,
								"message": "an unexpected error occurred",
							},
						})
					}
				}
			}()

			return next(c)
		}
	}
}
