package booking

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates. Dates are
// timezone-naive: they are parsed in UTC and never converted, so a
// booking made from any client timezone lands on the same calendar day.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Interval is a half-open calendar date range [Start, End).
// The end date is the check-out day and is not itself occupied.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Interval{}, fmt.Errorf("start date %s must be before end date %s",
			start.Format(DateLayout), end.Format(DateLayout))
	}
	return iv, nil
}

// Valid reports whether the interval is non-empty and forward.
func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// Overlaps reports whether two half-open intervals conflict.
// Strict inequalities on both sides: a booking that ends the day another
// begins does not occupy the same night.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// Nights returns the number of whole days covered by the interval.
func (iv Interval) Nights() int {
	return int(iv.End.Sub(iv.Start) / (24 * time.Hour))
}

// TotalPrice computes the booking price snapshot in currency minor units.
// The rate is captured at creation time and never recomputed.
func TotalPrice(iv Interval, pricePerDayCents int64) (int64, error) {
	nights := iv.Nights()
	if nights <= 0 {
		return 0, fmt.Errorf("interval must cover at least one night")
	}
	return int64(nights) * pricePerDayCents, nil
}
