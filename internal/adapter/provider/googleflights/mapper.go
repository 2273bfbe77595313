package googleflights

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// SearchAPI wire types.
type searchResponse struct {
	Error        string       `json:"error,omitempty"`
	BestFlights  []flightData `json:"best_flights"`
	OtherFlights []flightData `json:"other_flights"`
}

type flightData struct {
	ID      string          `json:"id"`
	Price   decimal.Decimal `json:"price"`
	Flights []segmentData   `json:"flights"`
}

type segmentData struct {
	DepartureAirport airportInfo `json:"departure_airport"`
	ArrivalAirport   airportInfo `json:"arrival_airport"`
	DepartureTime    string      `json:"departure_time"`
	ArrivalTime      string      `json:"arrival_time"`
	Airline          string      `json:"airline"`
	AirlineCode      string      `json:"airline_code"`
	FlightNumber     string      `json:"flight_number"`
	Aircraft         string      `json:"aircraft"`
	Stops            int         `json:"stops"`
}

type airportInfo struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// mapper normalizes SearchAPI responses. Entries that fail validation are
// skipped with a warning.
type mapper struct {
	log *logger.Logger
}

func newMapper(log *logger.Logger) *mapper {
	return &mapper{log: log.WithContext("component", "searchapi_response_mapper")}
}

func (m *mapper) mapResponse(data *searchResponse, criteria domain.SearchCriteria) []domain.Flight {
	flights := make([]domain.Flight, 0, len(data.BestFlights)+otherFlightsLimit)

	for _, fd := range data.BestFlights {
		flight, err := m.mapFlight(fd, criteria)
		if err != nil {
			m.log.Warn().
				Str("flight_id", fd.ID).
				Err(err).
				Msg("failed_to_map_flight")
			continue
		}
		flights = append(flights, flight)
	}

	others := data.OtherFlights
	if len(others) > otherFlightsLimit {
		others = others[:otherFlightsLimit]
	}
	for _, fd := range others {
		flight, err := m.mapFlight(fd, criteria)
		if err != nil {
			m.log.Warn().
				Str("flight_id", fd.ID).
				Err(err).
				Msg("failed_to_map_other_flight")
			continue
		}
		flights = append(flights, flight)
	}

	return flights
}

func (m *mapper) mapFlight(fd flightData, criteria domain.SearchCriteria) (domain.Flight, error) {
	if len(fd.Flights) == 0 {
		return domain.Flight{}, fmt.Errorf("no flight segments in data")
	}
	first := fd.Flights[0]
	last := fd.Flights[len(fd.Flights)-1]

	var departure time.Time
	if first.DepartureAirport.Date != "" {
		departure = parseAirportDateTime(first.DepartureAirport, criteria.DepartureDate())
	} else {
		depStr := first.DepartureTime
		if depStr == "" {
			depStr = "12:00 PM"
		}
		departure = parseFlightTime(depStr, criteria.DepartureDate(), time.Time{})
	}

	var arrival time.Time
	if last.ArrivalAirport.Date != "" {
		arrival = parseAirportDateTime(last.ArrivalAirport, criteria.DepartureDate())
	} else {
		arrStr := last.ArrivalTime
		if arrStr == "" {
			arrStr = "12:00 PM"
		}
		arrival = parseFlightTime(arrStr, criteria.DepartureDate(), departure)
	}

	price, err := domain.NewPrice(fd.Price.Round(2), "USD")
	if err != nil {
		return domain.Flight{}, err
	}

	airlineName := first.Airline
	if airlineName == "" {
		airlineName = "Unknown"
	}

	id := fd.ID
	if id == "" {
		id = syntheticID(fd)
	}

	return domain.NewFlight(domain.FlightSpec{
		ID:            "google_" + id,
		Origin:        criteria.Origin(),
		Destination:   criteria.Destination(),
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Price:         price,
		CabinClass:    criteria.CabinClass(),
		Stops:         totalStops(fd.Flights),
		Airline:       extractAirlineCode(first, airlineName),
		AirlineName:   airlineName,
		AircraftType:  first.Aircraft,
		FlightNumber:  first.FlightNumber,
		BookingURL:    bookingURL(fd, criteria),
	})
}

// totalStops sums per-segment stops plus one connection per segment break.
func totalStops(segments []segmentData) int {
	total := 0
	for _, s := range segments {
		total += s.Stops
	}
	if len(segments) > 1 {
		total += len(segments) - 1
	}
	return total
}

// extractAirlineCode resolves the designator from the explicit code, then
// the alpha prefix of the flight number, then the airline name, and finally
// the XX placeholder.
func extractAirlineCode(seg segmentData, airlineName string) string {
	if len(seg.AirlineCode) >= 2 {
		code := seg.AirlineCode
		if len(code) > 3 {
			code = code[:3]
		}
		return strings.ToUpper(code)
	}

	if len(seg.FlightNumber) >= 2 {
		prefix := seg.FlightNumber
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		var code strings.Builder
		for _, r := range prefix {
			if unicode.IsLetter(r) {
				code.WriteRune(r)
			}
		}
		if code.Len() >= 2 {
			return strings.ToUpper(code.String())
		}
	}

	if len(airlineName) >= 2 {
		return strings.ToUpper(airlineName[:2])
	}
	return "XX"
}

// bookingURL synthesizes a Google Flights search link for the itinerary.
func bookingURL(fd flightData, criteria domain.SearchCriteria) string {
	if len(fd.Flights) == 0 {
		return ""
	}
	origin := fd.Flights[0].DepartureAirport.ID
	if origin == "" {
		origin = criteria.Origin().Code()
	}
	destination := fd.Flights[len(fd.Flights)-1].ArrivalAirport.ID
	if destination == "" {
		destination = criteria.Destination().Code()
	}
	date := criteria.DepartureDate().Format("2006-01-02")
	return fmt.Sprintf("%s?q=flights%%20from%%20%s%%20to%%20%s%%20on%%20%s",
		bookingURLBase, origin, destination, date)
}

// syntheticID derives a stable fallback ID from the itinerary contents.
func syntheticID(fd flightData) string {
	h := fnv.New64a()
	for _, s := range fd.Flights {
		fmt.Fprintf(h, "%s|%s|%s|%s|", s.DepartureAirport.ID, s.ArrivalAirport.ID, s.DepartureTime, s.FlightNumber)
	}
	fmt.Fprint(h, fd.Price.String())
	return fmt.Sprintf("gf_%x", h.Sum64())
}
