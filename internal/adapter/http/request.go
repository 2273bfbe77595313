// Package http provides the HTTP handler layer for the flight finder API.
// It handles request parsing, validation, response formatting, and error
// mapping.
package http

import (
	"fmt"
	"time"

	"github.com/flight-search/flight-finder/internal/domain"
)

// SearchFlightsRequest represents the request body for flight search.
type SearchFlightsRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "LHR")
	Destination string `json:"destination"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departure_date"`

	// ReturnDate is the return date for round trips (optional)
	ReturnDate string `json:"return_date,omitempty"`

	// Adults is the number of adult passengers (default 1)
	Adults int `json:"adults,omitempty"`

	// Children is the number of child passengers
	Children int `json:"children,omitempty"`

	// Infants is the number of infant passengers
	Infants int `json:"infants,omitempty"`

	// CabinClass is the service tier: economy, premium_economy, business, first
	CabinClass string `json:"cabin_class,omitempty"`

	// MaxStops limits the number of stops (0-5, optional)
	MaxStops *int `json:"max_stops,omitempty"`

	// NonStopOnly restricts results to direct flights
	NonStopOnly bool `json:"non_stop_only,omitempty"`

	// FlexibleDates widens the search window around the requested dates
	FlexibleDates bool `json:"flexible_dates,omitempty"`

	// DateFlexibilityDays is the window half-width in days (1-7)
	DateFlexibilityDays int `json:"date_flexibility_days,omitempty"`
}

// ToCriteria converts the request into validated search criteria. All domain
// invariants are enforced by the criteria constructor; this only handles
// format concerns like date parsing.
func (r *SearchFlightsRequest) ToCriteria() (domain.SearchCriteria, error) {
	origin, err := domain.NewAirport(r.Origin)
	if err != nil {
		return domain.SearchCriteria{}, err
	}
	destination, err := domain.NewAirport(r.Destination)
	if err != nil {
		return domain.SearchCriteria{}, err
	}

	departureDate, err := parseDate("departure_date", r.DepartureDate, true)
	if err != nil {
		return domain.SearchCriteria{}, err
	}
	returnDate, err := parseDate("return_date", r.ReturnDate, false)
	if err != nil {
		return domain.SearchCriteria{}, err
	}

	adults := r.Adults
	if adults == 0 {
		adults = 1
	}
	passengers, err := domain.NewPassengerConfig(adults, r.Children, r.Infants)
	if err != nil {
		return domain.SearchCriteria{}, err
	}

	spec := domain.CriteriaSpec{
		Origin:              origin,
		Destination:         destination,
		DepartureDate:       departureDate,
		ReturnDate:          returnDate,
		Passengers:          passengers,
		CabinClass:          domain.ParseCabinClass(r.CabinClass),
		NonStopOnly:         r.NonStopOnly,
		FlexibleDates:       r.FlexibleDates,
		DateFlexibilityDays: r.DateFlexibilityDays,
	}
	if r.MaxStops != nil {
		spec.MaxStops = *r.MaxStops
		spec.MaxStopsSet = true
	}

	return domain.NewSearchCriteria(spec)
}

// parseDate parses a YYYY-MM-DD field. A missing optional date yields the
// zero time.
func parseDate(field, value string, required bool) (time.Time, error) {
	if value == "" {
		if required {
			return time.Time{}, domain.NewValidationError(field, nil,
				fmt.Sprintf("%s is required", field))
		}
		return time.Time{}, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, value,
			fmt.Sprintf("%s must be in YYYY-MM-DD format", field))
	}
	return t, nil
}
