package googleflights

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dayOffsetRegex = regexp.MustCompile(`\+(\d+)$`)

// parseFlightTime parses SearchAPI clock strings onto a base date:
//
//	"11:35 AM"  -> base date, 11:35
//	"2:40 PM+1" -> base date plus one day, 14:40
//	"21:25"     -> base date, 21:25
//
// When no explicit day offset is given and the result lands before
// previous (the departure of the same itinerary), the arrival is assumed
// to be on the next day.
func parseFlightTime(timeStr string, baseDate time.Time, previous time.Time) time.Time {
	dayOffset := 0
	if m := dayOffsetRegex.FindStringSubmatch(timeStr); m != nil {
		dayOffset, _ = strconv.Atoi(m[1])
	}
	clean := strings.TrimSpace(dayOffsetRegex.ReplaceAllString(timeStr, ""))

	clock, ok := parseClock(clean)
	if !ok {
		clock = time.Date(0, 1, 1, 12, 0, 0, 0, time.UTC)
	}

	result := time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	result = result.AddDate(0, 0, dayOffset)

	if !previous.IsZero() && result.Before(previous) && dayOffset == 0 {
		result = result.AddDate(0, 0, 1)
	}
	return result
}

func parseClock(s string) (time.Time, bool) {
	for _, layout := range []string{"15:04", "3:04 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAirportDateTime parses the structured {"date": "2026-03-15",
// "time": "21:25"} form, falling back to clock-only parsing.
func parseAirportDateTime(a airportInfo, fallbackDate time.Time) time.Time {
	if a.Date != "" && a.Time != "" {
		if t, err := time.ParseInLocation("2006-01-02 15:04", a.Date+" "+a.Time, time.UTC); err == nil {
			return t
		}
	}
	if a.Time != "" {
		base := fallbackDate
		if a.Date != "" {
			if d, err := time.ParseInLocation("2006-01-02", a.Date, time.UTC); err == nil {
				base = d
			}
		}
		return parseFlightTime(a.Time, base, time.Time{})
	}
	return time.Now().UTC()
}
