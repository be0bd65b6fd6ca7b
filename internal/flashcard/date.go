package flashcard

import (
	"fmt"
	"time"
)

// DateLayout is the storage and wire format of a calendar date.
const DateLayout = time.DateOnly

// Date is a calendar date without a time of day, always held as YYYY-MM-DD.
// Because the layout is fixed-width and big-endian, lexical order is
// chronological order.
type Date string

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of the date. Zero time if the date is malformed.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date n calendar days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d < other
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d > other
}

// DaysUntil returns the number of calendar days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == ""
}

func (d Date) String() string {
	return string(d)
}
