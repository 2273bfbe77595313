package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/usecase"
)

type fakeSearch struct {
	result *usecase.SearchResult
	err    error

	gotCriteria domain.SearchCriteria
}

func (f *fakeSearch) Execute(ctx context.Context, criteria domain.SearchCriteria) (*usecase.SearchResult, error) {
	f.gotCriteria = criteria
	return f.result, f.err
}

type fakeCache struct {
	stats    domain.CacheStats
	statsErr error
	clear    *usecase.ClearResult
	clearErr error
}

func (f *fakeCache) Stats() (domain.CacheStats, error)    { return f.stats, f.statsErr }
func (f *fakeCache) Clear() (*usecase.ClearResult, error) { return f.clear, f.clearErr }

func sampleResult(t *testing.T) *usecase.SearchResult {
	t.Helper()
	dep := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	f, err := domain.NewFlight(domain.FlightSpec{
		ID:            "skyscanner_1",
		Origin:        domain.MustAirport("JFK"),
		Destination:   domain.MustAirport("LHR"),
		DepartureTime: dep,
		ArrivalTime:   dep.Add(7 * time.Hour),
		Price:         domain.MustPrice("450.00", "USD"),
		Airline:       "BA",
	})
	require.NoError(t, err)
	return &usecase.SearchResult{
		Flights:        []domain.Flight{f},
		TotalResults:   1,
		ProvidersUsed:  []string{"skyscanner"},
		SearchDuration: 850 * time.Millisecond,
	}
}

func searchBody(t *testing.T, overrides map[string]any) string {
	t.Helper()
	body := map[string]any{
		"origin":         "JFK",
		"destination":    "LHR",
		"departure_date": time.Now().UTC().AddDate(0, 0, 30).Format("2006-01-02"),
	}
	for k, v := range overrides {
		body[k] = v
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return string(data)
}

func doJSON(t *testing.T, handler echo.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestSearchFlights_OK(t *testing.T) {
	search := &fakeSearch{result: sampleResult(t)}
	h := NewFlightHandler(search, &fakeCache{}, nil)

	rec, payload := doJSON(t, h.SearchFlights, http.MethodPost, "/api/v1/flights/search", searchBody(t, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])

	data := payload["data"].(map[string]any)
	assert.NotEmpty(t, data["search_id"])

	metadata := data["metadata"].(map[string]any)
	assert.Equal(t, float64(1), metadata["total_results"])
	assert.Equal(t, []any{"skyscanner"}, metadata["providers_used"])
	assert.Equal(t, float64(850), metadata["search_time_ms"])

	flights := data["flights"].([]any)
	require.Len(t, flights, 1)
	flight := flights[0].(map[string]any)
	assert.Equal(t, "skyscanner_1", flight["id"])
	assert.Equal(t, "450.00", flight["price"].(map[string]any)["amount"])
}

func TestSearchFlights_AppliesRequestFields(t *testing.T) {
	search := &fakeSearch{result: sampleResult(t)}
	h := NewFlightHandler(search, &fakeCache{}, nil)

	doJSON(t, h.SearchFlights, http.MethodPost, "/api/v1/flights/search", searchBody(t, map[string]any{
		"adults":      2,
		"children":    1,
		"cabin_class": "business",
		"max_stops":   0,
	}))

	c := search.gotCriteria
	assert.Equal(t, 2, c.Passengers().Adults())
	assert.Equal(t, 1, c.Passengers().Children())
	assert.Equal(t, domain.CabinBusiness, c.CabinClass())
	maxStops, set := c.MaxStops()
	assert.True(t, set, "explicit zero max_stops is preserved")
	assert.Equal(t, 0, maxStops)
}

func TestSearchFlights_MalformedBody(t *testing.T) {
	h := NewFlightHandler(&fakeSearch{}, &fakeCache{}, nil)

	rec, payload := doJSON(t, h.SearchFlights, http.MethodPost, "/api/v1/flights/search", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, payload["success"])
	errBody := payload["error"].(map[string]any)
	assert.Equal(t, domain.CodeValidationError, errBody["code"])
}

func TestSearchFlights_ValidationError(t *testing.T) {
	h := NewFlightHandler(&fakeSearch{}, &fakeCache{}, nil)

	rec, payload := doJSON(t, h.SearchFlights, http.MethodPost, "/api/v1/flights/search",
		`{"origin":"JFK","destination":"LHR"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := payload["error"].(map[string]any)
	assert.Equal(t, domain.CodeValidationError, errBody["code"])
	assert.Contains(t, errBody["message"], "departure_date is required")
	assert.Equal(t, "departure_date", errBody["context"].(map[string]any)["field"])
}

func TestSearchFlights_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "search failure",
			err:        domain.NewSearchError("flight search failed: all providers failed", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   domain.CodeSearchError,
		},
		{
			name:       "provider failure",
			err:        domain.NewProviderError("skyscanner", "down", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   domain.CodeProviderError,
		},
		{
			name:       "timeout",
			err:        domain.NewTimeoutError("skyscanner", 30*time.Second, nil),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   domain.CodeTimeoutError,
		},
		{
			name:       "rate limited",
			err:        domain.NewRateLimitError("skyscanner", 30*time.Second, nil),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   domain.CodeRateLimitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewFlightHandler(&fakeSearch{err: tt.err}, &fakeCache{}, nil)

			rec, payload := doJSON(t, h.SearchFlights, http.MethodPost, "/api/v1/flights/search", searchBody(t, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, payload["error"].(map[string]any)["code"])
		})
	}
}

func TestGetCacheStats_OK(t *testing.T) {
	h := NewFlightHandler(&fakeSearch{}, &fakeCache{
		stats: domain.CacheStats{Size: 3, MaxSize: 1000, Hits: 10, Misses: 5, HitRate: 66.67},
	}, nil)

	rec, payload := doJSON(t, h.GetCacheStats, http.MethodGet, "/api/v1/cache/stats", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := payload["data"].(map[string]any)
	assert.Equal(t, float64(3), data["size"])
	assert.InDelta(t, 66.67, data["hit_rate_percent"], 0.001)
}

func TestClearCache_OK(t *testing.T) {
	h := NewFlightHandler(&fakeSearch{}, &fakeCache{
		clear: &usecase.ClearResult{EntriesCleared: 4, EntriesBefore: 4},
	}, nil)

	rec, payload := doJSON(t, h.ClearCache, http.MethodDelete, "/api/v1/cache", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := payload["data"].(map[string]any)
	assert.Equal(t, float64(4), data["entries_cleared"])
	assert.Equal(t, float64(4), data["entries_before"])
}

func TestClearCache_NotConfigured(t *testing.T) {
	h := NewFlightHandler(&fakeSearch{}, &fakeCache{
		clearErr: domain.NewCacheManagementError("cache is not configured", nil),
	}, nil)

	rec, payload := doJSON(t, h.ClearCache, http.MethodDelete, "/api/v1/cache", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, domain.CodeCacheMgmtError, payload["error"].(map[string]any)["code"])
}

func TestHealth(t *testing.T) {
	h := NewFlightHandler(&fakeSearch{}, &fakeCache{}, nil)

	rec, payload := doJSON(t, h.Health, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", payload["status"])
}
