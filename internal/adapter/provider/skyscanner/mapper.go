package skyscanner

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// Poll response wire types. The results section is a set of cross-referenced
// lookup tables keyed by opaque IDs.
type pollResponse struct {
	Status  string      `json:"status"`
	Content pollContent `json:"content"`
}

type pollContent struct {
	Results pollResults `json:"results"`
}

type pollResults struct {
	Itineraries map[string]itinerary `json:"itineraries"`
	Legs        map[string]leg       `json:"legs"`
	Places      map[string]place     `json:"places"`
	Carriers    map[string]carrier   `json:"carriers"`
	Segments    map[string]segment   `json:"segments"`
}

type itinerary struct {
	PricingOptions []pricingOption `json:"pricingOptions"`
	LegIDs         []string        `json:"legIds"`
}

type pricingOption struct {
	Price priceInfo `json:"price"`
}

type priceInfo struct {
	// Amount arrives as a string or bare number, in minor or major units
	// depending on the partner tier.
	Amount json.RawMessage `json:"amount"`
	Unit   string          `json:"unit"`
}

type leg struct {
	OriginPlaceID      string          `json:"originPlaceId"`
	DestinationPlaceID string          `json:"destinationPlaceId"`
	DepartureDateTime  json.RawMessage `json:"departureDateTime"`
	ArrivalDateTime    json.RawMessage `json:"arrivalDateTime"`
	StopCount          int             `json:"stopCount"`
	SegmentIDs         []string        `json:"segmentIds"`
}

type place struct {
	IATA        string `json:"iata"`
	Name        string `json:"name"`
	CountryName string `json:"countryName"`
}

type carrier struct {
	IATA string `json:"iata"`
	Name string `json:"name"`
}

type segment struct {
	MarketingCarrierID    string `json:"marketingCarrierId"`
	OperatingCarrierID    string `json:"operatingCarrierId"`
	MarketingFlightNumber string `json:"marketingFlightNumber"`
}

// wireDateTime decodes the two timestamp encodings the API emits: an RFC
// 3339 string or a {year, month, day, hour, minute, second} object.
type wireDateTime struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// mapper turns poll responses into normalized flights. Itineraries that fail
// to map are skipped with a warning so one malformed entry never discards
// the rest of the response.
type mapper struct {
	idPrefix string
	log      *logger.Logger
}

func newMapper(name string, log *logger.Logger) *mapper {
	return &mapper{
		idPrefix: name + "_",
		log:      log.WithContext("component", name+"_response_mapper"),
	}
}

func (m *mapper) mapResponse(poll *pollResponse, cabin domain.CabinClass) []domain.Flight {
	results := poll.Content.Results
	flights := make([]domain.Flight, 0, len(results.Itineraries))

	// Walk itineraries in sorted-ID order so output order is deterministic
	// for equal prices; the wire format keys them by an unordered map.
	ids := make([]string, 0, len(results.Itineraries))
	for id := range results.Itineraries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		flight, err := m.mapItinerary(id, results.Itineraries[id], results, cabin)
		if err != nil {
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

func (m *mapper) mapItinerary(id string, itin itinerary, results pollResults, cabin domain.CabinClass) (domain.Flight, error) {
	if len(itin.PricingOptions) == 0 {
		return domain.Flight{}, fmt.Errorf("no pricing options")
	}
	price, err := parsePrice(itin.PricingOptions[0].Price)
	if err != nil {
		return domain.Flight{}, err
	}

	if len(itin.LegIDs) == 0 {
		return domain.Flight{}, fmt.Errorf("no legs in itinerary")
	}
	legID := itin.LegIDs[0]
	l, ok := results.Legs[legID]
	if !ok {
		return domain.Flight{}, fmt.Errorf("leg not found: %s", legID)
	}
	if len(l.SegmentIDs) == 0 {
		return domain.Flight{}, fmt.Errorf("no segments in leg")
	}

	seg := results.Segments[l.SegmentIDs[0]]
	carrierID := seg.MarketingCarrierID
	if carrierID == "" {
		carrierID = seg.OperatingCarrierID
	}
	car := results.Carriers[carrierID]

	airline := car.IATA
	if airline == "" && carrierID != "" {
		airline = strings.ToUpper(firstN(carrierID, 2))
	}
	if airline == "" {
		airline = "XX"
	}

	return domain.NewFlight(domain.FlightSpec{
		ID:            m.idPrefix + id,
		Origin:        resolveAirport(l.OriginPlaceID, results.Places),
		Destination:   resolveAirport(l.DestinationPlaceID, results.Places),
		DepartureTime: parseWireTime(l.DepartureDateTime),
		ArrivalTime:   parseWireTime(l.ArrivalDateTime),
		Price:         price,
		CabinClass:    cabin,
		Stops:         l.StopCount,
		Airline:       airline,
		AirlineName:   car.Name,
		FlightNumber:  seg.MarketingFlightNumber,
	})
}

// parsePrice handles minor-unit amounts: a value with no decimal point and
// more than two digits is treated as cents.
func parsePrice(p priceInfo) (domain.Price, error) {
	raw := string(p.Amount)
	if strings.HasPrefix(raw, `"`) {
		_ = json.Unmarshal(p.Amount, &raw)
	}
	if raw == "" || raw == "null" {
		return domain.Price{}, fmt.Errorf("no price amount")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return domain.Price{}, fmt.Errorf("invalid price amount %q: %w", raw, err)
	}
	if !strings.Contains(raw, ".") && len(raw) > 2 {
		amount = amount.Div(decimal.NewFromInt(100))
	}

	currency := p.Unit
	if currency == "" {
		currency = "USD"
	}
	return domain.NewPriceFromString(amount.StringFixed(2), currency)
}

// resolveAirport builds an Airport from the places table, falling back to a
// code derived from the place ID and finally to the XXX placeholder.
func resolveAirport(placeID string, places map[string]place) domain.Airport {
	pl := places[placeID]
	iata := pl.IATA
	if iata == "" && placeID != "" {
		iata = strings.ToUpper(firstN(placeID, 3))
	}
	if !isValidIATA(iata) {
		iata = "XXX"
	}

	name := pl.Name
	if name == "" {
		name = "Unknown"
	}
	country := pl.CountryName
	if country == "" {
		country = "US"
	}

	airport, err := domain.NewAirportDetailed(iata, name, name, country)
	if err != nil {
		airport = domain.MustAirport("XXX")
	}
	return airport
}

// parseWireTime decodes either timestamp encoding; unparseable values fall
// back to the current time so mapping can continue.
func parseWireTime(raw json.RawMessage) time.Time {
	if len(raw) == 0 {
		return time.Now().UTC()
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}

	var w wireDateTime
	if err := json.Unmarshal(raw, &w); err == nil && w.Year > 0 {
		return time.Date(w.Year, time.Month(w.Month), w.Day, w.Hour, w.Minute, w.Second, 0, time.UTC)
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

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
