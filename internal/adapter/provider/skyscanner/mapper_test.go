package skyscanner

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		unit    string
		want    string
		wantCur string
		wantErr bool
	}{
		{
			name:    "minor units without decimal point",
			amount:  `45000`,
			unit:    "USD",
			want:    "450.00",
			wantCur: "USD",
		},
		{
			name:    "major units with decimal point",
			amount:  `450.50`,
			unit:    "EUR",
			want:    "450.50",
			wantCur: "EUR",
		},
		{
			name:    "quoted string amount in minor units",
			amount:  `"45000"`,
			unit:    "USD",
			want:    "450.00",
			wantCur: "USD",
		},
		{
			name:    "two digits stay major units",
			amount:  `99`,
			unit:    "USD",
			want:    "99.00",
			wantCur: "USD",
		},
		{
			name:    "missing unit defaults to USD",
			amount:  `12000`,
			want:    "120.00",
			wantCur: "USD",
		},
		{
			name:    "null amount",
			amount:  `null`,
			wantErr: true,
		},
		{
			name:    "garbage amount",
			amount:  `"abc"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePrice(priceInfo{
				Amount: json.RawMessage(tt.amount),
				Unit:   tt.unit,
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Amount().StringFixed(2))
			assert.Equal(t, tt.wantCur, got.Currency())
		})
	}
}

func TestResolveAirport(t *testing.T) {
	places := map[string]place{
		"loc_jfk": {IATA: "JFK", Name: "John F. Kennedy", CountryName: "United States"},
		"lhr_sky": {Name: "Heathrow"},
	}

	t.Run("known place", func(t *testing.T) {
		a := resolveAirport("loc_jfk", places)
		assert.Equal(t, "JFK", a.Code())
	})

	t.Run("place without iata falls back to id prefix", func(t *testing.T) {
		a := resolveAirport("lhr_sky", places)
		assert.Equal(t, "LHR", a.Code())
	})

	t.Run("unresolvable id becomes placeholder", func(t *testing.T) {
		a := resolveAirport("95673529", places)
		assert.Equal(t, "XXX", a.Code(), "numeric id prefix is not a valid code")
	})

	t.Run("empty id becomes placeholder", func(t *testing.T) {
		a := resolveAirport("", places)
		assert.Equal(t, "XXX", a.Code())
	})
}

func TestParseWireTime(t *testing.T) {
	t.Run("rfc3339 string", func(t *testing.T) {
		got := parseWireTime(json.RawMessage(`"2026-09-10T08:30:00Z"`))
		assert.Equal(t, time.Date(2026, 9, 10, 8, 30, 0, 0, time.UTC), got)
	})

	t.Run("component object", func(t *testing.T) {
		got := parseWireTime(json.RawMessage(
			`{"year":2026,"month":9,"day":10,"hour":8,"minute":30,"second":15}`))
		assert.Equal(t, time.Date(2026, 9, 10, 8, 30, 15, 0, time.UTC), got)
	})

	t.Run("unparseable falls back to now", func(t *testing.T) {
		before := time.Now().UTC()
		got := parseWireTime(json.RawMessage(`"not a time"`))
		assert.WithinDuration(t, before, got, time.Second)
	})

	t.Run("empty falls back to now", func(t *testing.T) {
		before := time.Now().UTC()
		got := parseWireTime(nil)
		assert.WithinDuration(t, before, got, time.Second)
	})
}

func TestMapper_MapResponse(t *testing.T) {
	m := newMapper("skyscanner", logger.Nop())

	poll := &pollResponse{
		Status: "RESULT_STATUS_COMPLETE",
		Content: pollContent{
			Results: pollResults{
				Itineraries: map[string]itinerary{
					"itin-1": {
						PricingOptions: []pricingOption{
							{Price: priceInfo{Amount: json.RawMessage(`45000`), Unit: "USD"}},
						},
						LegIDs: []string{"leg-1"},
					},
					"itin-broken": {
						// No pricing options, must be skipped.
						LegIDs: []string{"leg-1"},
					},
				},
				Legs: map[string]leg{
					"leg-1": {
						OriginPlaceID:      "p-jfk",
						DestinationPlaceID: "p-lhr",
						DepartureDateTime:  json.RawMessage(`"2026-09-10T08:30:00Z"`),
						ArrivalDateTime:    json.RawMessage(`"2026-09-10T15:30:00Z"`),
						StopCount:          1,
						SegmentIDs:         []string{"seg-1"},
					},
				},
				Places: map[string]place{
					"p-jfk": {IATA: "JFK", Name: "John F. Kennedy", CountryName: "United States"},
					"p-lhr": {IATA: "LHR", Name: "Heathrow", CountryName: "United Kingdom"},
				},
				Carriers: map[string]carrier{
					"c-ba": {IATA: "BA", Name: "British Airways"},
				},
				Segments: map[string]segment{
					"seg-1": {MarketingCarrierID: "c-ba", MarketingFlightNumber: "178"},
				},
			},
		},
	}

	flights := m.mapResponse(poll, domain.CabinEconomy)
	require.Len(t, flights, 1, "broken itinerary skipped, valid one kept")

	f := flights[0]
	assert.Equal(t, "skyscanner_itin-1", f.ID())
	assert.Equal(t, "JFK", f.Origin().Code())
	assert.Equal(t, "LHR", f.Destination().Code())
	assert.Equal(t, "450.00", f.Price().Amount().StringFixed(2))
	assert.Equal(t, "BA", f.Airline())
	assert.Equal(t, "British Airways", f.AirlineName())
	assert.Equal(t, "178", f.FlightNumber())
	assert.Equal(t, 1, f.Stops())
	assert.Equal(t, domain.CabinEconomy, f.CabinClass())
}

func TestMapper_MapResponse_DeterministicOrder(t *testing.T) {
	m := newMapper("skyscanner", logger.Nop())

	itin := itinerary{
		PricingOptions: []pricingOption{
			{Price: priceInfo{Amount: json.RawMessage(`45000`), Unit: "USD"}},
		},
		LegIDs: []string{"leg-1"},
	}
	poll := &pollResponse{
		Content: pollContent{
			Results: pollResults{
				Itineraries: map[string]itinerary{
					"itin-c": itin,
					"itin-a": itin,
					"itin-b": itin,
				},
				Legs: map[string]leg{
					"leg-1": {
						OriginPlaceID:      "p-jfk",
						DestinationPlaceID: "p-lhr",
						DepartureDateTime:  json.RawMessage(`"2026-09-10T08:30:00Z"`),
						ArrivalDateTime:    json.RawMessage(`"2026-09-10T15:30:00Z"`),
						SegmentIDs:         []string{"seg-1"},
					},
				},
				Places: map[string]place{
					"p-jfk": {IATA: "JFK"},
					"p-lhr": {IATA: "LHR"},
				},
				Carriers: map[string]carrier{"c-ba": {IATA: "BA"}},
				Segments: map[string]segment{"seg-1": {MarketingCarrierID: "c-ba"}},
			},
		},
	}

	// Equal prices everywhere, so only a deterministic walk of the
	// itinerary map keeps the output order stable across runs.
	for i := 0; i < 5; i++ {
		flights := m.mapResponse(poll, domain.CabinEconomy)
		require.Len(t, flights, 3)
		assert.Equal(t, []string{"skyscanner_itin-a", "skyscanner_itin-b", "skyscanner_itin-c"},
			[]string{flights[0].ID(), flights[1].ID(), flights[2].ID()})
	}
}

func TestMapper_CarrierFallbacks(t *testing.T) {
	results := pollResults{
		Legs: map[string]leg{
			"leg-1": {
				OriginPlaceID:      "p-jfk",
				DestinationPlaceID: "p-lhr",
				DepartureDateTime:  json.RawMessage(`"2026-09-10T08:30:00Z"`),
				ArrivalDateTime:    json.RawMessage(`"2026-09-10T15:30:00Z"`),
				SegmentIDs:         []string{"seg-1"},
			},
		},
		Places: map[string]place{
			"p-jfk": {IATA: "JFK"},
			"p-lhr": {IATA: "LHR"},
		},
		Carriers: map[string]carrier{},
		Segments: map[string]segment{
			"seg-1": {OperatingCarrierID: "ba-carrier"},
		},
	}
	itin := itinerary{
		PricingOptions: []pricingOption{
			{Price: priceInfo{Amount: json.RawMessage(`45000`), Unit: "USD"}},
		},
		LegIDs: []string{"leg-1"},
	}

	m := newMapper("skyscanner", logger.Nop())

	t.Run("unknown carrier id derives a code", func(t *testing.T) {
		f, err := m.mapItinerary("itin-1", itin, results, domain.CabinEconomy)
		require.NoError(t, err)
		assert.Equal(t, "BA", f.Airline(), "first two characters of the carrier id")
	})

	t.Run("no carrier at all becomes XX", func(t *testing.T) {
		noCarrier := results
		noCarrier.Segments = map[string]segment{"seg-1": {}}
		f, err := m.mapItinerary("itin-1", itin, noCarrier, domain.CabinEconomy)
		require.NoError(t, err)
		assert.Equal(t, "XX", f.Airline())
	})
}

func TestMapper_MapItineraryErrors(t *testing.T) {
	m := newMapper("skyscanner", logger.Nop())
	results := pollResults{Legs: map[string]leg{}}

	_, err := m.mapItinerary("itin-1", itinerary{}, results, domain.CabinEconomy)
	assert.ErrorContains(t, err, "no pricing options")

	priced := itinerary{
		PricingOptions: []pricingOption{
			{Price: priceInfo{Amount: json.RawMessage(`45000`)}},
		},
	}
	_, err = m.mapItinerary("itin-1", priced, results, domain.CabinEconomy)
	assert.ErrorContains(t, err, "no legs")

	priced.LegIDs = []string{"leg-missing"}
	_, err = m.mapItinerary("itin-1", priced, results, domain.CabinEconomy)
	assert.ErrorContains(t, err, "leg not found")
}
