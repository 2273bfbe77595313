// Package domain contains the core business entities and rules for the flight
// finder. These types are provider-agnostic: every back-end adapter normalizes
// its wire format into them, and everything above the adapters depends only on
// them. All value objects and entities are constructed through validating
// factories and are immutable afterwards.
package domain

import (
	"fmt"
	"regexp"
	"time"
)

// maxSegmentDuration rejects itineraries longer than a day; anything beyond
// that is multi-segment data that should have been split by the provider.
const maxSegmentDuration = 24 * time.Hour

// airlineCodeRegex matches 2-3 character alphanumeric airline designators.
var airlineCodeRegex = regexp.MustCompile(`^[A-Z0-9]{2,3}$`)

// Flight is a single priced flight offering normalized from a provider.
// Identity (equality and hashing) is defined over ID only; providers namespace
// their IDs as "<provider>_<backend id>" so IDs are globally unique.
type Flight struct {
	id            string
	origin        Airport
	destination   Airport
	departureTime time.Time
	arrivalTime   time.Time
	price         Price
	cabinClass    CabinClass
	stops         int
	airline       string

	// Optional metadata.
	airlineName  string
	aircraftType string
	flightNumber string
	bookingURL   string
}

// FlightSpec carries the inputs to NewFlight. Optional fields may be empty.
type FlightSpec struct {
	ID            string
	Origin        Airport
	Destination   Airport
	DepartureTime time.Time
	ArrivalTime   time.Time
	Price         Price
	CabinClass    CabinClass
	Stops         int
	Airline       string
	AirlineName   string
	AircraftType  string
	FlightNumber  string
	BookingURL    string
}

// NewFlight validates and creates a Flight entity. Invariants:
// origin != destination, departure < arrival, duration under 24 hours,
// stops 0-5, airline code 2-3 alphanumeric characters (uppercased).
func NewFlight(spec FlightSpec) (Flight, error) {
	if spec.ID == "" {
		return Flight{}, NewValidationError("id", spec.ID, "flight id is required")
	}
	if spec.Origin.IsZero() || spec.Destination.IsZero() {
		return Flight{}, NewValidationError("origin", spec.Origin.Code(), "origin and destination airports are required")
	}
	if spec.Origin.Equal(spec.Destination) {
		return Flight{}, NewValidationError("destination", spec.Destination.Code(),
			fmt.Sprintf("origin and destination cannot be the same airport: %s", spec.Origin.Code()))
	}
	if !spec.ArrivalTime.After(spec.DepartureTime) {
		return Flight{}, NewValidationError("arrival_time", spec.ArrivalTime,
			fmt.Sprintf("arrival time (%s) must be after departure time (%s)",
				spec.ArrivalTime.Format(time.RFC3339), spec.DepartureTime.Format(time.RFC3339)))
	}
	if d := spec.ArrivalTime.Sub(spec.DepartureTime); d >= maxSegmentDuration {
		return Flight{}, NewValidationError("arrival_time", spec.ArrivalTime,
			fmt.Sprintf("flight duration (%.1f hours) reaches 24 hours; multi-segment journeys must be split", d.Hours()))
	}
	if spec.Stops < 0 || spec.Stops > 5 {
		return Flight{}, NewValidationError("stops", spec.Stops,
			fmt.Sprintf("stops must be between 0 and 5, got %d", spec.Stops))
	}
	if spec.Price.IsZero() {
		return Flight{}, NewValidationError("price", nil, "flight price is required")
	}

	cabin := spec.CabinClass
	if cabin == "" {
		cabin = CabinEconomy
	}
	if !cabin.IsValid() {
		return Flight{}, NewValidationError("cabin_class", string(spec.CabinClass),
			fmt.Sprintf("invalid cabin class: %q", spec.CabinClass))
	}

	airline := normalizeAirlineCode(spec.Airline)
	if !airlineCodeRegex.MatchString(airline) {
		return Flight{}, NewValidationError("airline", spec.Airline,
			fmt.Sprintf("airline code must be 2-3 alphanumeric characters: %q", spec.Airline))
	}

	return Flight{
		id:            spec.ID,
		origin:        spec.Origin,
		destination:   spec.Destination,
		departureTime: spec.DepartureTime,
		arrivalTime:   spec.ArrivalTime,
		price:         spec.Price,
		cabinClass:    cabin,
		stops:         spec.Stops,
		airline:       airline,
		airlineName:   spec.AirlineName,
		aircraftType:  spec.AircraftType,
		flightNumber:  spec.FlightNumber,
		bookingURL:    spec.BookingURL,
	}, nil
}

// ID returns the globally unique flight identifier.
func (f Flight) ID() string { return f.id }

// Origin returns the departure airport.
func (f Flight) Origin() Airport { return f.origin }

// Destination returns the arrival airport.
func (f Flight) Destination() Airport { return f.destination }

// DepartureTime returns the scheduled departure time.
func (f Flight) DepartureTime() time.Time { return f.departureTime }

// ArrivalTime returns the scheduled arrival time.
func (f Flight) ArrivalTime() time.Time { return f.arrivalTime }

// Price returns the flight price.
func (f Flight) Price() Price { return f.price }

// CabinClass returns the cabin class.
func (f Flight) CabinClass() CabinClass { return f.cabinClass }

// Stops returns the number of intermediate stops.
func (f Flight) Stops() int { return f.stops }

// Airline returns the 2-3 character airline designator.
func (f Flight) Airline() string { return f.airline }

// AirlineName returns the full airline name, or empty if unknown.
func (f Flight) AirlineName() string { return f.airlineName }

// AircraftType returns the aircraft type, or empty if unknown.
func (f Flight) AircraftType() string { return f.aircraftType }

// FlightNumber returns the flight number, or empty if unknown.
func (f Flight) FlightNumber() string { return f.flightNumber }

// BookingURL returns a booking link, or empty if none was provided.
func (f Flight) BookingURL() string { return f.bookingURL }

// IsNonStop reports whether the flight is direct.
func (f Flight) IsNonStop() bool { return f.stops == 0 }

// DurationMinutes returns the total flight duration in minutes.
func (f Flight) DurationMinutes() int {
	return int(f.arrivalTime.Sub(f.departureTime).Minutes())
}

// Equal reports identity equality (same ID).
func (f Flight) Equal(other Flight) bool { return f.id == other.id }

// String formats as "DL 123 JFK -> LAX (5.5h, non-stop) - USD 299.00".
func (f Flight) String() string {
	stopsText := "non-stop"
	if f.stops == 1 {
		stopsText = "1 stop"
	} else if f.stops > 1 {
		stopsText = fmt.Sprintf("%d stops", f.stops)
	}
	return fmt.Sprintf("%s %s %s -> %s (%.1fh, %s) - %s",
		f.airline, f.flightNumber, f.origin.Code(), f.destination.Code(),
		f.arrivalTime.Sub(f.departureTime).Hours(), stopsText, f.price)
}

func normalizeAirlineCode(code string) string {
	out := make([]rune, 0, len(code))
	for _, r := range code {
		if r == ' ' || r == '\t' {
			continue
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
