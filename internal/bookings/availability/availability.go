// Package availability decides whether a room class has a free unit for a
// stay. Ranges are half-open: the end date is the checkout day and is not
// occupied.
package availability

import "time"

type DateRange struct {
	Start time.Time
	End   time.Time
}

// Nights is the number of occupied days in r.
func (r DateRange) Nights() int {
	if !r.End.After(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Valid reports whether r covers at least one night.
func (r DateRange) Valid() bool {
	return r.End.After(r.Start)
}

// Overlaps reports whether [startA, endA) and [startB, endB) share a day.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}

// RemainingCapacity is unitCount minus the reservations that overlap the
// candidate range. Every reservation holds exactly one unit. The result may
// be negative when the store already holds more reservations than units.
func RemainingCapacity(unitCount int, candidate DateRange, existing []DateRange) int {
	occupied := 0
	for _, r := range existing {
		if Overlaps(r.Start, r.End, candidate.Start, candidate.End) {
			occupied++
		}
	}
	return unitCount - occupied
}

// Available reports whether at least one unit is free.
func Available(unitCount int, candidate DateRange, existing []DateRange) bool {
	return RemainingCapacity(unitCount, candidate, existing) > 0
}

// Intersection returns the part of r that falls inside window, or a zero
// range when they do not overlap.
func Intersection(r, window DateRange) DateRange {
	if !Overlaps(r.Start, r.End, window.Start, window.End) {
		return DateRange{}
	}
	out := r
	if window.Start.After(out.Start) {
		out.Start = window.Start
	}
	if window.End.Before(out.End) {
		out.End = window.End
	}
	return out
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// Day truncates t to UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
