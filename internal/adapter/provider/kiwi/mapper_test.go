package kiwi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

func testSegment(code, from, to, depart, arrive string) sectorSegment {
	return sectorSegment{
		Segment: wireSegment{
			Code: code,
			Source: wireLocation{
				Station:    wireStation{Code: from, Name: from + " Airport"},
				UTCTimeISO: depart,
			},
			Destination: wireLocation{
				Station:    wireStation{Code: to, Name: to + " Airport"},
				UTCTimeISO: arrive,
			},
			Carrier: wireCarrier{Code: "FR", Name: "Ryanair"},
		},
	}
}

func TestMapper_MapItinerary_OneWay(t *testing.T) {
	m := newMapper(logger.Nop())

	itin := wireItinerary{
		ID:       "itin-1",
		TypeName: "ItineraryOneWay",
		Price:    wirePrice{Amount: "89.99"},
		Sector: &sector{
			SectorSegments: []sectorSegment{
				testSegment("1234", "STN", "DUB", "2026-09-10T08:00:00Z", "2026-09-10T09:20:00Z"),
			},
		},
		BookingOptions: &bookingOptions{
			Edges: []bookingEdge{{Node: bookingNode{BookingURL: "/booking?token=abc"}}},
		},
	}

	f, err := m.mapItinerary(itin, domain.CabinEconomy)
	require.NoError(t, err)

	assert.Equal(t, "kiwi_itin-1", f.ID())
	assert.Equal(t, "STN", f.Origin().Code())
	assert.Equal(t, "DUB", f.Destination().Code())
	assert.Equal(t, "89.99", f.Price().Amount().StringFixed(2))
	assert.Equal(t, "FR", f.Airline())
	assert.Equal(t, "Ryanair", f.AirlineName())
	assert.Equal(t, 0, f.Stops())
	assert.Equal(t, "/booking?token=abc", f.BookingURL())
	assert.Equal(t, time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC), f.DepartureTime())
}

func TestMapper_MapItinerary_ReturnUsesOutbound(t *testing.T) {
	m := newMapper(logger.Nop())

	itin := wireItinerary{
		ID:       "itin-2",
		TypeName: "ItineraryReturn",
		Price:    wirePrice{Amount: "240"},
		Outbound: &sector{
			SectorSegments: []sectorSegment{
				testSegment("100", "JFK", "KEF", "2026-09-10T18:00:00Z", "2026-09-11T04:00:00Z"),
				testSegment("200", "KEF", "LHR", "2026-09-11T06:00:00Z", "2026-09-11T09:00:00Z"),
			},
		},
	}

	f, err := m.mapItinerary(itin, domain.CabinEconomy)
	require.NoError(t, err)

	assert.Equal(t, "JFK", f.Origin().Code())
	assert.Equal(t, "LHR", f.Destination().Code(), "route spans first to last outbound segment")
	assert.Equal(t, 1, f.Stops(), "stops derived from segment count")
	assert.Equal(t, "100", f.FlightNumber(), "first segment identifies the flight")
	assert.Empty(t, f.BookingURL())
}

func TestMapper_MapItinerary_Errors(t *testing.T) {
	m := newMapper(logger.Nop())

	_, err := m.mapItinerary(wireItinerary{ID: "x"}, domain.CabinEconomy)
	assert.ErrorContains(t, err, "no price amount")

	_, err = m.mapItinerary(wireItinerary{
		ID:    "x",
		Price: wirePrice{Amount: "not-a-number"},
	}, domain.CabinEconomy)
	assert.ErrorContains(t, err, "invalid price amount")

	_, err = m.mapItinerary(wireItinerary{
		ID:    "x",
		Price: wirePrice{Amount: "100"},
	}, domain.CabinEconomy)
	assert.ErrorContains(t, err, "no sector segments")
}

func TestMapper_MapResponse_SkipsBrokenItineraries(t *testing.T) {
	m := newMapper(logger.Nop())

	resp := &searchResponse{
		Status: true,
		Data: responseData{
			Itineraries: []wireItinerary{
				{
					ID:    "good",
					Price: wirePrice{Amount: "120"},
					Sector: &sector{
						SectorSegments: []sectorSegment{
							testSegment("1", "STN", "DUB", "2026-09-10T08:00:00Z", "2026-09-10T09:20:00Z"),
						},
					},
				},
				{ID: "bad"}, // no price, skipped
			},
		},
	}

	flights := m.mapResponse(resp, domain.CabinEconomy)
	require.Len(t, flights, 1)
	assert.Equal(t, "kiwi_good", flights[0].ID())
}

func TestExtractAirport_Fallbacks(t *testing.T) {
	t.Run("invalid station code becomes placeholder", func(t *testing.T) {
		a := extractAirport(wireLocation{Station: wireStation{Code: "12"}})
		assert.Equal(t, "XXX", a.Code())
	})

	t.Run("lowercase code normalized", func(t *testing.T) {
		a := extractAirport(wireLocation{Station: wireStation{Code: "dub"}})
		assert.Equal(t, "DUB", a.Code())
	})
}

func TestParseTimestamp(t *testing.T) {
	t.Run("utc timestamp preferred", func(t *testing.T) {
		got := parseTimestamp(wireLocation{
			UTCTimeISO: "2026-09-10T08:00:00Z",
			LocalTime:  "2026-09-10T10:00:00",
		})
		assert.Equal(t, time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC), got)
	})

	t.Run("local time fallback", func(t *testing.T) {
		got := parseTimestamp(wireLocation{LocalTime: "2026-09-10T10:00:00"})
		assert.Equal(t, time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("nothing parseable falls back to now", func(t *testing.T) {
		before := time.Now().UTC()
		got := parseTimestamp(wireLocation{})
		assert.WithinDuration(t, before, got, time.Second)
	})
}
