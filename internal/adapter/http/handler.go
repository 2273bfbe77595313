package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-finder/internal/adapter/http/response"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/usecase"
)

// FlightHandler handles HTTP requests for flight search and cache endpoints.
type FlightHandler struct {
	search usecase.SearchUseCase
	cache  usecase.CacheUseCase
	log    *logger.Logger
}

// NewFlightHandler creates a new FlightHandler with the given use cases.
func NewFlightHandler(search usecase.SearchUseCase, cache usecase.CacheUseCase, log *logger.Logger) *FlightHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &FlightHandler{
		search: search,
		cache:  cache,
		log:    log.WithContext("component", "http_handler"),
	}
}

// SearchFlights handles POST /api/v1/flights/search
//
// @Summary Search for flights
// @Description Search for flights across all configured providers and return deduplicated results sorted by price
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchFlightsRequest true "Search criteria"
// @Success 200 {object} response.Response{data=SearchResponseDTO}
// @Failure 400 {object} response.Response "Validation error"
// @Failure 503 {object} response.Response "All providers failed"
// @Failure 504 {object} response.Response "Search timed out"
// @Router /flights/search [post]
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var req SearchFlightsRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	criteria, err := req.ToCriteria()
	if err != nil {
		return response.DomainError(c, err)
	}

	searchID := uuid.NewString()
	result, err := h.search.Execute(c.Request().Context(), criteria)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.OK(c, ToSearchResponseDTO(searchID, result))
}

// GetCacheStats handles GET /api/v1/cache/stats
//
// @Summary Get cache statistics
// @Description Return result cache statistics: size, hits, misses, and hit rate
// @Tags cache
// @Produce json
// @Success 200 {object} response.Response{data=CacheStatsDTO}
// @Router /cache/stats [get]
func (h *FlightHandler) GetCacheStats(c echo.Context) error {
	stats, err := h.cache.Stats()
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.OK(c, ToCacheStatsDTO(stats))
}

// ClearCache handles DELETE /api/v1/cache
//
// @Summary Clear the result cache
// @Description Remove all cached search results, preserving cumulative hit/miss counters
// @Tags cache
// @Produce json
// @Success 200 {object} response.Response{data=ClearCacheDTO}
// @Router /cache [delete]
func (h *FlightHandler) ClearCache(c echo.Context) error {
	result, err := h.cache.Clear()
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.OK(c, &ClearCacheDTO{
		EntriesCleared: result.EntriesCleared,
		EntriesBefore:  result.EntriesBefore,
	})
}

// Health handles GET /health
// Simple health check endpoint.
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c)
}
