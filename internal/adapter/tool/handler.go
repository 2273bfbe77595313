// Package tool exposes the flight search operations over the model context
// protocol so an LLM host can invoke them as tools on stdio.
package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/usecase"
)

// Handler implements the three tool operations.
type Handler struct {
	search usecase.SearchUseCase
	cache  usecase.CacheUseCase
	log    *logger.Logger
}

// NewHandler creates a Handler over the given use cases.
func NewHandler(search usecase.SearchUseCase, cache usecase.CacheUseCase, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		search: search,
		cache:  cache,
		log:    log.WithContext("component", "tool_handler"),
	}
}

// SearchFlights handles the search_flights tool call.
func (h *Handler) SearchFlights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	searchID := uuid.NewString()
	log := h.log.WithSearchID(searchID)

	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultText(marshalError(
			domain.NewValidationError("arguments", nil, "arguments must be an object"))), nil
	}

	criteria, err := parseCriteria(args)
	if err != nil {
		log.Warn().Err(err).Msg("invalid_search_arguments")
		return mcp.NewToolResultText(marshalError(err)), nil
	}

	result, err := h.search.Execute(ctx, criteria)
	if err != nil {
		log.Error().Err(err).Msg("tool_search_failed")
		return mcp.NewToolResultText(marshalError(err)), nil
	}

	payload, err := marshalResult(toSearchResponse(searchID, result))
	if err != nil {
		log.Error().Err(err).Msg("tool_response_encode_failed")
		return mcp.NewToolResultText(marshalError(err)), nil
	}
	return mcp.NewToolResultText(payload), nil
}

// GetCacheStats handles the get_cache_stats tool call.
func (h *Handler) GetCacheStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.cache.Stats()
	if err != nil {
		h.log.Error().Err(err).Msg("tool_cache_stats_failed")
		return mcp.NewToolResultText(marshalError(err)), nil
	}

	payload, err := marshalResult(toCacheStatsResponse(stats))
	if err != nil {
		return mcp.NewToolResultText(marshalError(err)), nil
	}
	return mcp.NewToolResultText(payload), nil
}

// ClearCache handles the clear_cache tool call.
func (h *Handler) ClearCache(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.cache.Clear()
	if err != nil {
		h.log.Error().Err(err).Msg("tool_cache_clear_failed")
		return mcp.NewToolResultText(marshalError(err)), nil
	}

	payload, err := marshalResult(toClearCacheResponse(result))
	if err != nil {
		return mcp.NewToolResultText(marshalError(err)), nil
	}
	return mcp.NewToolResultText(payload), nil
}

// parseCriteria builds validated search criteria from the raw tool arguments.
func parseCriteria(args map[string]interface{}) (domain.SearchCriteria, error) {
	originCode, _ := args["origin"].(string)
	origin, err := domain.NewAirport(originCode)
	if err != nil {
		return domain.SearchCriteria{}, err
	}

	destCode, _ := args["destination"].(string)
	destination, err := domain.NewAirport(destCode)
	if err != nil {
		return domain.SearchCriteria{}, err
	}

	departureDate, err := parseDateArg(args, "departure_date", true)
	if err != nil {
		return domain.SearchCriteria{}, err
	}
	returnDate, err := parseDateArg(args, "return_date", false)
	if err != nil {
		return domain.SearchCriteria{}, err
	}

	adults := intArg(args, "adults", 1)
	children := intArg(args, "children", 0)
	infants := intArg(args, "infants", 0)
	passengers, err := domain.NewPassengerConfig(adults, children, infants)
	if err != nil {
		return domain.SearchCriteria{}, err
	}

	cabinStr, _ := args["cabin_class"].(string)
	cabin := domain.ParseCabinClass(cabinStr)

	spec := domain.CriteriaSpec{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		Passengers:    passengers,
		CabinClass:    cabin,
	}
	if v, ok := args["max_stops"].(float64); ok {
		spec.MaxStops = int(v)
		spec.MaxStopsSet = true
	}
	if v, ok := args["non_stop_only"].(bool); ok {
		spec.NonStopOnly = v
	}

	return domain.NewSearchCriteria(spec)
}

// parseDateArg reads a YYYY-MM-DD argument. A missing optional date yields
// the zero time.
func parseDateArg(args map[string]interface{}, key string, required bool) (time.Time, error) {
	raw, _ := args[key].(string)
	if raw == "" {
		if required {
			return time.Time{}, domain.NewValidationError(key, nil,
				fmt.Sprintf("%s is required", key))
		}
		return time.Time{}, nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(key, raw,
			fmt.Sprintf("%s must be in YYYY-MM-DD format", key))
	}
	return t, nil
}

// intArg reads a numeric argument, which arrives as float64 from JSON.
func intArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}
