// Package datecal provides local calendar dates without a time component.
// Values are exchanged as "YYYY-MM-DD" strings and never converted between
// time zones.
package datecal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ISOLayout is the canonical exchange format (YYYY-MM-DD).
const ISOLayout = "2006-01-02"

// ErrInvalidDate is returned when a string is not a valid YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date")

// Date is a local calendar day. The zero value means "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the normalized date for year, month, day. Out-of-range days and
// months roll over the way time.Date does.
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime takes the wall-clock day of t in its own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local day according to clock.
func Today(clock func() time.Time) Date {
	if clock == nil {
		clock = time.Now
	}
	return FromTime(clock())
}

// ParseLocalDate parses a YYYY-MM-DD string. Surrounding whitespace is ignored.
func ParseLocalDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("parse %q: %w", s, ErrInvalidDate)
	}
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse %q: %w", s, ErrInvalidDate)
	}
	return FromTime(t), nil
}

// FormatLocalDate renders d as YYYY-MM-DD, or "" for the zero date.
func FormatLocalDate(d Date) string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(ISOLayout)
}

func (d Date) String() string {
	return FormatLocalDate(d)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0 or +1 ordering by (year, month, day).
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool { return d.Compare(other) == 0 }

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.time().AddDate(0, 0, n))
}

// AddMonths returns d shifted by n months, rolling over short months.
func (d Date) AddMonths(n int) Date {
	return FromTime(d.time().AddDate(0, n, 0))
}

// Weekday reports the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

// ViewMonth returns the month containing d.
func (d Date) ViewMonth() ViewMonth {
	return ViewMonth{Year: d.Year, Month: d.Month}
}

// DaysBetween returns the number of whole days from a to b (negative when b
// is before a).
func DaysBetween(a, b Date) int {
	return int(b.dayNumber() - a.dayNumber())
}

// dayNumber counts days since 1970-01-01. It avoids time.Duration, which
// overflows past about 292 years.
func (d Date) dayNumber() int64 {
	return floorDiv64(d.time().Unix(), 86400)
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// InclusiveDays counts the days of [start, end] including both ends.
func InclusiveDays(start, end Date) int {
	return DaysBetween(start, end) + 1
}

// Min returns the earlier of a and b.
func Min(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
