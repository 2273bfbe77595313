package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all flight finder API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *FlightHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchFlights)

	cache := api.Group("/cache")
	cache.GET("/stats", h.GetCacheStats)
	cache.DELETE("", h.ClearCache)
}
