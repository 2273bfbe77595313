package domain

import (
	"fmt"
	"strings"
	"time"
)

// Search criteria limits.
const (
	MaxStopsLimit          = 5
	MaxTripLengthDays      = 365
	MinDateFlexibilityDays = 1
	MaxDateFlexibilityDays = 7
)

// SearchCriteria is an immutable, validated description of a flight search.
// A zero return date means a one-way trip. MaxStops is optional; NonStopOnly
// is a stricter form and cannot be combined with a positive MaxStops.
type SearchCriteria struct {
	origin              Airport
	destination         Airport
	departureDate       time.Time
	returnDate          time.Time
	passengers          PassengerConfig
	cabinClass          CabinClass
	maxStops            int
	maxStopsSet         bool
	nonStopOnly         bool
	flexibleDates       bool
	dateFlexibilityDays int
}

// CriteriaSpec carries the inputs to NewSearchCriteria.
type CriteriaSpec struct {
	Origin        Airport
	Destination   Airport
	DepartureDate time.Time
	// ReturnDate zero value means one-way.
	ReturnDate time.Time
	// Passengers zero value defaults to a single adult.
	Passengers PassengerConfig
	// CabinClass empty defaults to economy.
	CabinClass CabinClass
	// MaxStops is only honored when MaxStopsSet is true.
	MaxStops            int
	MaxStopsSet         bool
	NonStopOnly         bool
	FlexibleDates       bool
	DateFlexibilityDays int
}

// NewSearchCriteria validates and creates a SearchCriteria.
func NewSearchCriteria(spec CriteriaSpec) (SearchCriteria, error) {
	if spec.Origin.IsZero() {
		return SearchCriteria{}, NewValidationError("origin", nil, "origin airport is required")
	}
	if spec.Destination.IsZero() {
		return SearchCriteria{}, NewValidationError("destination", nil, "destination airport is required")
	}
	if spec.Origin.Equal(spec.Destination) {
		return SearchCriteria{}, NewValidationError("destination", spec.Destination.Code(),
			fmt.Sprintf("origin and destination cannot be the same airport: %s", spec.Origin.Code()))
	}

	departure := truncateToDate(spec.DepartureDate)
	if departure.IsZero() || spec.DepartureDate.IsZero() {
		return SearchCriteria{}, NewValidationError("departure_date", nil, "departure date is required")
	}
	if today := todayUTC(); departure.Before(today) {
		return SearchCriteria{}, NewValidationError("departure_date", departure.Format(dateLayout),
			fmt.Sprintf("departure date (%s) cannot be in the past (today: %s)",
				departure.Format(dateLayout), today.Format(dateLayout)))
	}

	var returnDate time.Time
	if !spec.ReturnDate.IsZero() {
		returnDate = truncateToDate(spec.ReturnDate)
		if !returnDate.After(departure) {
			return SearchCriteria{}, NewValidationError("return_date", returnDate.Format(dateLayout),
				fmt.Sprintf("return date (%s) must be after departure date (%s)",
					returnDate.Format(dateLayout), departure.Format(dateLayout)))
		}
		if returnDate.Sub(departure) > MaxTripLengthDays*24*time.Hour {
			return SearchCriteria{}, NewValidationError("return_date", returnDate.Format(dateLayout),
				fmt.Sprintf("trip length cannot exceed %d days", MaxTripLengthDays))
		}
	}

	passengers := spec.Passengers
	if passengers.Total() == 0 {
		passengers = DefaultPassengers()
	}

	cabin := spec.CabinClass
	if cabin == "" {
		cabin = CabinEconomy
	}
	if !cabin.IsValid() {
		return SearchCriteria{}, NewValidationError("cabin_class", string(spec.CabinClass),
			fmt.Sprintf("invalid cabin class: %q", spec.CabinClass))
	}

	if spec.MaxStopsSet && (spec.MaxStops < 0 || spec.MaxStops > MaxStopsLimit) {
		return SearchCriteria{}, NewValidationError("max_stops", spec.MaxStops,
			fmt.Sprintf("max stops must be between 0 and %d, got %d", MaxStopsLimit, spec.MaxStops))
	}
	if spec.NonStopOnly && spec.MaxStopsSet && spec.MaxStops > 0 {
		return SearchCriteria{}, NewValidationError("max_stops", spec.MaxStops,
			"non_stop_only cannot be combined with a positive max_stops")
	}

	days := spec.DateFlexibilityDays
	if spec.FlexibleDates {
		if days == 0 {
			days = MinDateFlexibilityDays
		}
		if days < MinDateFlexibilityDays || days > MaxDateFlexibilityDays {
			return SearchCriteria{}, NewValidationError("date_flexibility_days", days,
				fmt.Sprintf("date flexibility must be between %d and %d days, got %d",
					MinDateFlexibilityDays, MaxDateFlexibilityDays, days))
		}
	} else if days != 0 {
		return SearchCriteria{}, NewValidationError("date_flexibility_days", days,
			"date_flexibility_days requires flexible_dates to be enabled")
	}

	return SearchCriteria{
		origin:              spec.Origin,
		destination:         spec.Destination,
		departureDate:       departure,
		returnDate:          returnDate,
		passengers:          passengers,
		cabinClass:          cabin,
		maxStops:            spec.MaxStops,
		maxStopsSet:         spec.MaxStopsSet,
		nonStopOnly:         spec.NonStopOnly,
		flexibleDates:       spec.FlexibleDates,
		dateFlexibilityDays: days,
	}, nil
}

// Origin returns the departure airport.
func (c SearchCriteria) Origin() Airport { return c.origin }

// Destination returns the arrival airport.
func (c SearchCriteria) Destination() Airport { return c.destination }

// DepartureDate returns the outbound date (midnight UTC).
func (c SearchCriteria) DepartureDate() time.Time { return c.departureDate }

// ReturnDate returns the inbound date and whether one was set.
func (c SearchCriteria) ReturnDate() (time.Time, bool) {
	return c.returnDate, !c.returnDate.IsZero()
}

// Passengers returns the passenger breakdown.
func (c SearchCriteria) Passengers() PassengerConfig { return c.passengers }

// CabinClass returns the requested cabin class.
func (c SearchCriteria) CabinClass() CabinClass { return c.cabinClass }

// MaxStops returns the requested stop limit and whether one was set.
// Prefer EffectiveMaxStops, which folds in NonStopOnly.
func (c SearchCriteria) MaxStops() (int, bool) { return c.maxStops, c.maxStopsSet }

// NonStopOnly reports whether only direct flights were requested.
func (c SearchCriteria) NonStopOnly() bool { return c.nonStopOnly }

// FlexibleDates reports whether surrounding dates should be searched too.
func (c SearchCriteria) FlexibleDates() bool { return c.flexibleDates }

// DateFlexibilityDays returns the flexible-date radius, 0 when disabled.
func (c SearchCriteria) DateFlexibilityDays() int { return c.dateFlexibilityDays }

// IsRoundTrip reports whether a return date was set.
func (c SearchCriteria) IsRoundTrip() bool { return !c.returnDate.IsZero() }

// EffectiveMaxStops resolves NonStopOnly and MaxStops into a single limit.
// NonStopOnly forces 0; otherwise the explicit limit applies if set.
func (c SearchCriteria) EffectiveMaxStops() (int, bool) {
	if c.nonStopOnly {
		return 0, true
	}
	return c.maxStops, c.maxStopsSet
}

// DepartureWindow returns the range of departure dates to search. Without
// flexible dates it is the single departure day. The window never reaches
// into the past.
func (c SearchCriteria) DepartureWindow() DateRange {
	return c.flexWindow(c.departureDate)
}

// ReturnWindow returns the range of return dates to search, and false for
// one-way trips.
func (c SearchCriteria) ReturnWindow() (DateRange, bool) {
	if c.returnDate.IsZero() {
		return DateRange{}, false
	}
	return c.flexWindow(c.returnDate), true
}

func (c SearchCriteria) flexWindow(center time.Time) DateRange {
	if !c.flexibleDates {
		return DateRange{start: center, end: center}
	}
	start := center.AddDate(0, 0, -c.dateFlexibilityDays)
	end := center.AddDate(0, 0, c.dateFlexibilityDays)
	if today := todayUTC(); start.Before(today) {
		start = today
	}
	return DateRange{start: start, end: end}
}

// String formats a compact summary for logs.
func (c SearchCriteria) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s->%s %s", c.origin.Code(), c.destination.Code(), c.departureDate.Format(dateLayout))
	if c.IsRoundTrip() {
		fmt.Fprintf(&b, " (return %s)", c.returnDate.Format(dateLayout))
	}
	fmt.Fprintf(&b, " %s %s", c.passengers, c.cabinClass)
	if stops, ok := c.EffectiveMaxStops(); ok {
		fmt.Fprintf(&b, " max_stops=%d", stops)
	}
	if c.flexibleDates {
		fmt.Fprintf(&b, " flex=%dd", c.dateFlexibilityDays)
	}
	return b.String()
}
