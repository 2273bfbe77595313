package kiwi

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// Wire types. Round-trip itineraries carry an outbound sector; one-way
// itineraries a plain sector.
type searchResponse struct {
	Status  bool         `json:"status"`
	Message string       `json:"message"`
	Data    responseData `json:"data"`
}

type responseData struct {
	Itineraries []wireItinerary `json:"itineraries"`
}

type wireItinerary struct {
	ID             string          `json:"id"`
	TypeName       string          `json:"__typename"`
	Price          wirePrice       `json:"price"`
	Sector         *sector         `json:"sector"`
	Outbound       *sector         `json:"outbound"`
	BookingOptions *bookingOptions `json:"bookingOptions"`
}

type wirePrice struct {
	Amount string `json:"amount"`
}

type sector struct {
	SectorSegments []sectorSegment `json:"sectorSegments"`
}

type sectorSegment struct {
	Segment wireSegment `json:"segment"`
}

type wireSegment struct {
	Code        string       `json:"code"`
	Source      wireLocation `json:"source"`
	Destination wireLocation `json:"destination"`
	Carrier     wireCarrier  `json:"carrier"`
}

type wireLocation struct {
	Station    wireStation `json:"station"`
	UTCTimeISO string      `json:"utcTimeIso"`
	LocalTime  string      `json:"localTime"`
}

type wireStation struct {
	Code string    `json:"code"`
	Name string    `json:"name"`
	City *wireCity `json:"city"`
}

type wireCity struct {
	Name string `json:"name"`
}

type wireCarrier struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type bookingOptions struct {
	Edges []bookingEdge `json:"edges"`
}

type bookingEdge struct {
	Node bookingNode `json:"node"`
}

type bookingNode struct {
	BookingURL string `json:"bookingUrl"`
}

// mapper normalizes Kiwi itineraries. Stops are derived from the segment
// count since the API reports one sector segment per flown leg.
type mapper struct {
	log *logger.Logger
}

func newMapper(log *logger.Logger) *mapper {
	return &mapper{log: log.WithContext("component", "kiwi_response_mapper")}
}

func (m *mapper) mapResponse(data *searchResponse, cabin domain.CabinClass) []domain.Flight {
	flights := make([]domain.Flight, 0, len(data.Data.Itineraries))
	for _, itin := range data.Data.Itineraries {
		flight, err := m.mapItinerary(itin, cabin)
		if err != nil {
			id := itin.ID
			if id == "" {
				id = "unknown"
			}
			m.log.Warn().
				Str("itinerary_id", id).
				Err(err).
				Msg("failed_to_map_itinerary")
			continue
		}
		flights = append(flights, flight)
	}
	return flights
}

func (m *mapper) mapItinerary(itin wireItinerary, cabin domain.CabinClass) (domain.Flight, error) {
	if itin.Price.Amount == "" {
		return domain.Flight{}, fmt.Errorf("no price amount")
	}
	amount, err := decimal.NewFromString(itin.Price.Amount)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("invalid price amount %q: %w", itin.Price.Amount, err)
	}
	price, err := domain.NewPrice(amount.Round(2), "USD")
	if err != nil {
		return domain.Flight{}, err
	}

	segments := itin.segments()
	if len(segments) == 0 {
		return domain.Flight{}, fmt.Errorf("no sector segments")
	}
	first := segments[0].Segment
	last := segments[len(segments)-1].Segment

	airline := first.Carrier.Code
	if airline == "" {
		airline = "XX"
	}

	return domain.NewFlight(domain.FlightSpec{
		ID:            "kiwi_" + itin.ID,
		Origin:        extractAirport(first.Source),
		Destination:   extractAirport(last.Destination),
		DepartureTime: parseTimestamp(first.Source),
		ArrivalTime:   parseTimestamp(last.Destination),
		Price:         price,
		CabinClass:    cabin,
		Stops:         len(segments) - 1,
		Airline:       airline,
		AirlineName:   first.Carrier.Name,
		FlightNumber:  first.Code,
		BookingURL:    itin.bookingURL(),
	})
}

// segments picks the outbound sector for round trips, the plain sector
// otherwise.
func (w wireItinerary) segments() []sectorSegment {
	if w.TypeName == "ItineraryReturn" || w.Outbound != nil {
		if w.Outbound != nil {
			return w.Outbound.SectorSegments
		}
		return nil
	}
	if w.Sector != nil {
		return w.Sector.SectorSegments
	}
	return nil
}

func (w wireItinerary) bookingURL() string {
	if w.BookingOptions == nil || len(w.BookingOptions.Edges) == 0 {
		return ""
	}
	return w.BookingOptions.Edges[0].Node.BookingURL
}

func extractAirport(loc wireLocation) domain.Airport {
	code := loc.Station.Code
	if !isValidIATA(code) {
		code = "XXX"
	}

	name := loc.Station.Name
	if name == "" {
		name = "Unknown"
	}
	city := "Unknown"
	if loc.Station.City != nil && loc.Station.City.Name != "" {
		city = loc.Station.City.Name
	}

	airport, err := domain.NewAirportDetailed(strings.ToUpper(code), name, city, "")
	if err != nil {
		airport = domain.MustAirport("XXX")
	}
	return airport
}

// parseTimestamp prefers the UTC timestamp, falls back to local time, and
// finally to the current time.
func parseTimestamp(loc wireLocation) time.Time {
	if loc.UTCTimeISO != "" {
		if t, err := time.Parse(time.RFC3339, loc.UTCTimeISO); err == nil {
			return t
		}
	}
	if loc.LocalTime != "" {
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", loc.LocalTime, time.UTC); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

func isValidIATA(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
