package http

import (
	"time"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/usecase"
)

// SearchResponseDTO is the data transfer object for search responses.
type SearchResponseDTO struct {
	SearchID string      `json:"search_id"`
	Metadata MetadataDTO `json:"metadata"`
	Flights  []FlightDTO `json:"flights"`
}

// MetadataDTO contains metadata about the search execution.
type MetadataDTO struct {
	TotalResults  int      `json:"total_results"`
	ProvidersUsed []string `json:"providers_used"`
	SearchTimeMs  int64    `json:"search_time_ms"`
	CacheHit      bool     `json:"cache_hit"`
}

// FlightDTO is the data transfer object for flight responses.
type FlightDTO struct {
	ID              string   `json:"id"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	DepartureTime   string   `json:"departure_time"`
	ArrivalTime     string   `json:"arrival_time"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           PriceDTO `json:"price"`
	Airline         string   `json:"airline"`
	AirlineName     string   `json:"airline_name,omitempty"`
	FlightNumber    string   `json:"flight_number,omitempty"`
	CabinClass      string   `json:"cabin_class"`
	Stops           int      `json:"stops"`
	IsNonStop       bool     `json:"is_non_stop"`
	BookingURL      string   `json:"booking_url,omitempty"`
}

// PriceDTO represents price information. The amount is a string to preserve
// decimal precision.
type PriceDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// CacheStatsDTO is the data transfer object for cache statistics.
type CacheStatsDTO struct {
	Size           int     `json:"size"`
	MaxSize        int     `json:"max_size"`
	Hits           uint64  `json:"hits"`
	Misses         uint64  `json:"misses"`
	HitRatePercent float64 `json:"hit_rate_percent"`
}

// ClearCacheDTO is the data transfer object for cache clear results.
type ClearCacheDTO struct {
	EntriesCleared int `json:"entries_cleared"`
	EntriesBefore  int `json:"entries_before"`
}

// ToSearchResponseDTO converts a search result to its response DTO.
func ToSearchResponseDTO(searchID string, result *usecase.SearchResult) *SearchResponseDTO {
	flights := make([]FlightDTO, len(result.Flights))
	for i, f := range result.Flights {
		flights[i] = ToFlightDTO(f)
	}

	return &SearchResponseDTO{
		SearchID: searchID,
		Metadata: MetadataDTO{
			TotalResults:  result.TotalResults,
			ProvidersUsed: result.ProvidersUsed,
			SearchTimeMs:  result.SearchDuration.Milliseconds(),
			CacheHit:      result.CacheHit,
		},
		Flights: flights,
	}
}

// ToFlightDTO converts a domain Flight to a FlightDTO.
func ToFlightDTO(f domain.Flight) FlightDTO {
	return FlightDTO{
		ID:              f.ID(),
		Origin:          f.Origin().Code(),
		Destination:     f.Destination().Code(),
		DepartureTime:   f.DepartureTime().Format(time.RFC3339),
		ArrivalTime:     f.ArrivalTime().Format(time.RFC3339),
		DurationMinutes: f.DurationMinutes(),
		Price: PriceDTO{
			Amount:   f.Price().Amount().StringFixed(2),
			Currency: f.Price().Currency(),
		},
		Airline:      f.Airline(),
		AirlineName:  f.AirlineName(),
		FlightNumber: f.FlightNumber(),
		CabinClass:   f.CabinClass().String(),
		Stops:        f.Stops(),
		IsNonStop:    f.IsNonStop(),
		BookingURL:   f.BookingURL(),
	}
}

// ToCacheStatsDTO converts cache statistics to the response DTO.
func ToCacheStatsDTO(stats domain.CacheStats) *CacheStatsDTO {
	return &CacheStatsDTO{
		Size:           stats.Size,
		MaxSize:        stats.MaxSize,
		Hits:           stats.Hits,
		Misses:         stats.Misses,
		HitRatePercent: stats.HitRate,
	}
}
