package types

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DateLayout is the wire format of Date (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// Date is a calendar day. The zero value means "not set".
//
// Dates are always produced in the organization timezone (see Today), so
// comparing two Dates never depends on the timezone of the host.
type Date string

// ParseDate validates and returns a Date
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", goerr.Wrap(err, "invalid date", goerr.V("date", s))
	}
	return Date(s), nil
}

// DateOf returns the calendar day of t in loc
func DateOf(t time.Time, loc *time.Location) Date {
	return Date(t.In(loc).Format(DateLayout))
}

// Today returns the current calendar day in loc
func Today(loc *time.Location) Date {
	return DateOf(time.Now(), loc)
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d == ""
}

// Time returns midnight UTC of the date. Only used for day arithmetic.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date n days later (n may be negative)
func (d Date) AddDays(n int) Date {
	return Date(d.Time().AddDate(0, 0, n).Format(DateLayout))
}

// After reports whether d is strictly later than other
func (d Date) After(other Date) bool {
	return d > other
}

// String returns the YYYY-MM-DD representation
func (d Date) String() string {
	return string(d)
}
