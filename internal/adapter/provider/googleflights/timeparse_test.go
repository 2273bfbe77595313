package googleflights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func TestParseFlightTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		previous time.Time
		want     time.Time
	}{
		{
			name:  "12 hour clock",
			input: "11:35 AM",
			want:  time.Date(2026, 3, 15, 11, 35, 0, 0, time.UTC),
		},
		{
			name:  "12 hour clock afternoon",
			input: "2:40 PM",
			want:  time.Date(2026, 3, 15, 14, 40, 0, 0, time.UTC),
		},
		{
			name:  "24 hour clock",
			input: "21:25",
			want:  time.Date(2026, 3, 15, 21, 25, 0, 0, time.UTC),
		},
		{
			name:  "explicit next day offset",
			input: "2:40 PM+1",
			want:  time.Date(2026, 3, 16, 14, 40, 0, 0, time.UTC),
		},
		{
			name:  "two day offset",
			input: "6:15 AM+2",
			want:  time.Date(2026, 3, 17, 6, 15, 0, 0, time.UTC),
		},
		{
			name:     "arrival before departure rolls to next day",
			input:    "1:30 AM",
			previous: time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC),
			want:     time.Date(2026, 3, 16, 1, 30, 0, 0, time.UTC),
		},
		{
			name:     "arrival after departure stays same day",
			input:    "11:00 PM",
			previous: time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC),
			want:     time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC),
		},
		{
			name:  "unparseable clock defaults to noon",
			input: "around lunch",
			want:  time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFlightTime(tt.input, base, tt.previous)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAirportDateTime(t *testing.T) {
	t.Run("structured date and time", func(t *testing.T) {
		got := parseAirportDateTime(airportInfo{Date: "2026-03-15", Time: "21:25"}, base)
		assert.Equal(t, time.Date(2026, 3, 15, 21, 25, 0, 0, time.UTC), got)
	})

	t.Run("time only uses fallback date", func(t *testing.T) {
		got := parseAirportDateTime(airportInfo{Time: "11:35 AM"}, base)
		assert.Equal(t, time.Date(2026, 3, 15, 11, 35, 0, 0, time.UTC), got)
	})

	t.Run("empty falls back to now", func(t *testing.T) {
		before := time.Now().UTC()
		got := parseAirportDateTime(airportInfo{}, base)
		assert.WithinDuration(t, before, got, time.Second)
	})
}
