package datecal

import (
	"fmt"
	"time"
)

// ViewMonth is the (year, month) a calendar is showing. Month is always
// within January..December.
type ViewMonth struct {
	Year  int
	Month time.Month
}

// NewViewMonth normalizes month overflow into the year, so month 13 becomes
// January of the next year and month 0 becomes December of the previous one.
func NewViewMonth(year int, month time.Month) ViewMonth {
	idx := int(month) - 1
	year += floorDiv(idx, 12)
	idx = floorMod(idx, 12)
	return ViewMonth{Year: year, Month: time.Month(idx + 1)}
}

// AddMonths moves the view by delta months.
func (v ViewMonth) AddMonths(delta int) ViewMonth {
	return NewViewMonth(v.Year, v.Month+time.Month(delta))
}

// AddYears moves the view by delta years.
func (v ViewMonth) AddYears(delta int) ViewMonth {
	return NewViewMonth(v.Year+delta, v.Month)
}

// First returns day 1 of the month.
func (v ViewMonth) First() Date {
	return Date{Year: v.Year, Month: v.Month, Day: 1}
}

// Days returns the number of days in the month.
func (v ViewMonth) Days() int {
	return time.Date(v.Year, v.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether d falls inside the month.
func (v ViewMonth) Contains(d Date) bool {
	return d.Year == v.Year && d.Month == v.Month
}

// LeadingBlanks returns how many empty cells precede day 1 when weeks start
// on weekStart.
func (v ViewMonth) LeadingBlanks(weekStart time.Weekday) int {
	return (int(v.First().Weekday()) - int(weekStart) + 7) % 7
}

func (v ViewMonth) String() string {
	return fmt.Sprintf("%04d-%02d", v.Year, int(v.Month))
}

// Title renders the month as "2025년 1월".
func (v ViewMonth) Title() string {
	return fmt.Sprintf("%d년 %d월", v.Year, int(v.Month))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
