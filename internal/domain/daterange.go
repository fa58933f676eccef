package domain

import "time"

// DateRange is an inclusive [Start, End] calendar date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two inclusive date ranges intersect:
// a.Start <= b.End AND a.End >= b.Start. Every availability check in the
// system goes through this predicate; an off-by-one here silently creates
// double-booking.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// OverlapsOpenEnd is Overlaps against a range whose end may be nil. A nil
// end is unbounded into the future and always satisfies the upper-bound
// comparison, matching open-ended maintenance windows.
func (r DateRange) OverlapsOpenEnd(start time.Time, end *time.Time) bool {
	if end == nil {
		return !r.End.Before(start)
	}
	return r.Overlaps(DateRange{Start: start, End: *end})
}

// Valid reports whether Start is on or before End.
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// DateOnly truncates t to a calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in UTC.
func Today() time.Time {
	return DateOnly(time.Now().UTC())
}
