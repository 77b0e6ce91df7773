package planner

import (
	"time"
)

// RangeCalculator computes the canonical [start, end] boundaries for a
// calendar view anchored at a reference date. The location and week start are
// injected once at construction rather than read from the environment, so
// results are deterministic for a given (viewType, referenceDate) pair.
type RangeCalculator struct {
	Location  *time.Location
	WeekStart time.Weekday
}

// NewRangeCalculator builds a calculator for the given location. A nil
// location falls back to UTC. Weeks begin on Sunday unless overridden.
func NewRangeCalculator(loc *time.Location) *RangeCalculator {
	if loc == nil {
		loc = time.UTC
	}
	return &RangeCalculator{
		Location:  loc,
		WeekStart: time.Sunday,
	}
}

// endOfDayNanos places the range end at 23:59:59.999 of its calendar day.
const endOfDayNanos = 999 * int(time.Millisecond)

// CalculateRange returns the inclusive boundaries of the view containing
// referenceDate. Day views span one calendar day, week views span the seven
// days beginning at the configured week start on or before the reference,
// month views span the reference's calendar month (leap years included).
func (rc *RangeCalculator) CalculateRange(viewType ViewType, referenceDate time.Time) (time.Time, time.Time, error) {
	ref := referenceDate.In(rc.Location)
	year, month, day := ref.Date()

	switch viewType {
	case ViewTypeDay:
		start := time.Date(year, month, day, 0, 0, 0, 0, rc.Location)
		end := time.Date(year, month, day, 23, 59, 59, endOfDayNanos, rc.Location)
		return start, end, nil

	case ViewTypeWeek:
		offset := (int(ref.Weekday()) - int(rc.WeekStart) + 7) % 7
		start := time.Date(year, month, day-offset, 0, 0, 0, 0, rc.Location)
		end := time.Date(start.Year(), start.Month(), start.Day()+6, 23, 59, 59, endOfDayNanos, rc.Location)
		return start, end, nil

	case ViewTypeMonth:
		start := time.Date(year, month, 1, 0, 0, 0, 0, rc.Location)
		// Day zero of the next month normalizes to this month's last day.
		lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, rc.Location).Day()
		end := time.Date(year, month, lastDay, 23, 59, 59, endOfDayNanos, rc.Location)
		return start, end, nil

	default:
		return time.Time{}, time.Time{}, &ValidationError{
			Field:  "viewType",
			Reason: "must be one of: day, week, month",
		}
	}
}
