package tool

import (
	"time"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/usecase"
)

// priceDTO renders a price with the amount as a string so callers never lose
// precision to float rounding.
type priceDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type flightDTO struct {
	ID              string   `json:"id"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	DepartureTime   string   `json:"departure_time"`
	ArrivalTime     string   `json:"arrival_time"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           priceDTO `json:"price"`
	Airline         string   `json:"airline"`
	AirlineName     string   `json:"airline_name,omitempty"`
	FlightNumber    string   `json:"flight_number,omitempty"`
	CabinClass      string   `json:"cabin_class"`
	Stops           int      `json:"stops"`
	IsNonStop       bool     `json:"is_non_stop"`
	BookingURL      string   `json:"booking_url,omitempty"`
}

type priceRangeDTO struct {
	Min priceDTO `json:"min"`
	Max priceDTO `json:"max"`
}

type searchSummaryDTO struct {
	TotalFlights     int            `json:"total_flights"`
	SearchDurationMS int64          `json:"search_duration_ms"`
	ProvidersUsed    []string       `json:"providers_used"`
	CacheHit         bool           `json:"cache_hit"`
	PriceRange       *priceRangeDTO `json:"price_range,omitempty"`
}

type searchResponseDTO struct {
	Success  bool             `json:"success"`
	SearchID string           `json:"search_id"`
	Summary  searchSummaryDTO `json:"summary"`
	Flights  []flightDTO      `json:"flights"`
}

type cacheStatsResponseDTO struct {
	Success bool          `json:"success"`
	Cache   cacheStatsDTO `json:"cache"`
}

type cacheStatsDTO struct {
	Size           int     `json:"size"`
	MaxSize        int     `json:"max_size"`
	Hits           uint64  `json:"hits"`
	Misses         uint64  `json:"misses"`
	HitRatePercent float64 `json:"hit_rate_percent"`
}

type clearCacheResponseDTO struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Details clearDetailsDTO `json:"details"`
}

type clearDetailsDTO struct {
	EntriesCleared int `json:"entries_cleared"`
	EntriesBefore  int `json:"entries_before"`
}

func toFlightDTO(f domain.Flight) flightDTO {
	return flightDTO{
		ID:              f.ID(),
		Origin:          f.Origin().Code(),
		Destination:     f.Destination().Code(),
		DepartureTime:   f.DepartureTime().Format(time.RFC3339),
		ArrivalTime:     f.ArrivalTime().Format(time.RFC3339),
		DurationMinutes: f.DurationMinutes(),
		Price: priceDTO{
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

func toSearchResponse(searchID string, result *usecase.SearchResult) searchResponseDTO {
	flights := make([]flightDTO, 0, len(result.Flights))
	for _, f := range result.Flights {
		flights = append(flights, toFlightDTO(f))
	}

	return searchResponseDTO{
		Success:  true,
		SearchID: searchID,
		Summary: searchSummaryDTO{
			TotalFlights:     result.TotalResults,
			SearchDurationMS: result.SearchDuration.Milliseconds(),
			ProvidersUsed:    result.ProvidersUsed,
			CacheHit:         result.CacheHit,
			PriceRange:       priceRange(result.Flights),
		},
		Flights: flights,
	}
}

// priceRange finds the cheapest and most expensive flight, nil when there are
// no flights.
func priceRange(flights []domain.Flight) *priceRangeDTO {
	if len(flights) == 0 {
		return nil
	}

	min, max := flights[0].Price(), flights[0].Price()
	for _, f := range flights[1:] {
		p := f.Price()
		if p.Amount().LessThan(min.Amount()) {
			min = p
		}
		if p.Amount().GreaterThan(max.Amount()) {
			max = p
		}
	}
	return &priceRangeDTO{
		Min: priceDTO{Amount: min.Amount().StringFixed(2), Currency: min.Currency()},
		Max: priceDTO{Amount: max.Amount().StringFixed(2), Currency: max.Currency()},
	}
}

func toCacheStatsResponse(stats domain.CacheStats) cacheStatsResponseDTO {
	return cacheStatsResponseDTO{
		Success: true,
		Cache: cacheStatsDTO{
			Size:           stats.Size,
			MaxSize:        stats.MaxSize,
			Hits:           stats.Hits,
			Misses:         stats.Misses,
			HitRatePercent: stats.HitRate,
		},
	}
}

func toClearCacheResponse(result *usecase.ClearResult) clearCacheResponseDTO {
	return clearCacheResponseDTO{
		Success: true,
		Message: "cache cleared",
		Details: clearDetailsDTO{
			EntriesCleared: result.EntriesCleared,
			EntriesBefore:  result.EntriesBefore,
		},
	}
}
