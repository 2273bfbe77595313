package domain

import (
	"fmt"
	"time"
)

// DateRange is an immutable inclusive date range used for flexible-date
// searches. Start must not be after end, and must not be in the past.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange creates a DateRange from start and end dates. Both are
// truncated to midnight UTC. Start must be <= end and >= today.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)

	if end.Before(start) {
		return DateRange{}, NewValidationError("end_date", end.Format(dateLayout),
			fmt.Sprintf("end date (%s) cannot be before start date (%s)", end.Format(dateLayout), start.Format(dateLayout)))
	}
	if today := todayUTC(); start.Before(today) {
		return DateRange{}, NewValidationError("start_date", start.Format(dateLayout),
			fmt.Sprintf("start date (%s) cannot be in the past (today: %s)", start.Format(dateLayout), today.Format(dateLayout)))
	}

	return DateRange{start: start, end: end}, nil
}

// Start returns the first date of the range.
func (r DateRange) Start() time.Time { return r.start }

// End returns the last date of the range.
func (r DateRange) End() time.Time { return r.end }

// DurationDays counts the days in the range, inclusive of both endpoints.
func (r DateRange) DurationDays() int {
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// Contains checks whether a date falls within the range (inclusive).
func (r DateRange) Contains(d time.Time) bool {
	d = truncateToDate(d)
	return !d.Before(r.start) && !d.After(r.end)
}

// Overlaps checks whether two ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}

// IsSingleDay reports whether the range covers exactly one day.
func (r DateRange) IsSingleDay() bool { return r.start.Equal(r.end) }

// String formats as "2026-03-01 to 2026-03-05".
func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.start.Format(dateLayout), r.end.Format(dateLayout))
}

const dateLayout = "2006-01-02"

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func todayUTC() time.Time {
	return truncateToDate(time.Now())
}
