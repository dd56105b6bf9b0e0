// Package warranty derives an item's warranty state from its expiry date and
// an explicit reference time. "Now" is always a parameter so callers stay
// deterministic under test.
package warranty

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusNoWarranty   Status = "no_warranty"
	StatusActive       Status = "active"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
)

// The product uses two bands: the urgent window drives badge styling, the
// expiring window is the shared 30-day "is it upcoming" cutoff used by both
// the list badges and the dashboard filter.
const (
	UrgentWindowDays   = 7
	ExpiringWindowDays = 30
)

var ErrInvalidDate = errors.New("invalid_date")

type Result struct {
	DaysRemaining *int
	Status        Status
}

// DaysBetween returns the whole calendar-day difference from one instant to
// another, ignoring time-of-day. An expiry later today is 0 days away, never
// negative.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}

// Evaluate classifies an optional expiry date against now.
func Evaluate(expiry *time.Time, now time.Time) Result {
	if expiry == nil {
		return Result{Status: StatusNoWarranty}
	}
	days := DaysBetween(now, *expiry)
	r := Result{DaysRemaining: &days}
	switch {
	case days < 0:
		r.Status = StatusExpired
	case days <= ExpiringWindowDays:
		r.Status = StatusExpiringSoon
	default:
		r.Status = StatusActive
	}
	return r
}

// Urgent reports whether the item is inside the tight badge band: expired or
// expiring within the urgent window.
func (r Result) Urgent() bool {
	if r.DaysRemaining == nil {
		return false
	}
	return *r.DaysRemaining <= UrgentWindowDays
}

// Label is the badge text shown next to an item.
func (r Result) Label() string {
	if r.DaysRemaining == nil {
		return ""
	}
	d := *r.DaysRemaining
	switch {
	case d < 0:
		return "Expired"
	case d == 0:
		return "Expires today"
	default:
		return fmt.Sprintf("%dd left", d)
	}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses a stored or submitted date value. Malformed input is
// reported as ErrInvalidDate rather than defaulting silently.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
