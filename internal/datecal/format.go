package datecal

import (
	"fmt"
	"time"
)

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// WeekdayLabel returns the single-character Korean weekday name.
func WeekdayLabel(w time.Weekday) string {
	return koreanWeekdays[int(w)%7]
}

// WeekdayHeader lists weekday labels in column order starting at weekStart.
func WeekdayHeader(weekStart time.Weekday) []string {
	out := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, WeekdayLabel(time.Weekday((int(weekStart)+i)%7)))
	}
	return out
}

// FormatDisplay renders d as "YY년 MM월 DD일 (요일)".
func FormatDisplay(d Date) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d년 %02d월 %02d일 (%s)", d.Year%100, int(d.Month), d.Day, WeekdayLabel(d.Weekday()))
}

// FormatDuration renders an inclusive day count as "N일".
func FormatDuration(days int) string {
	return fmt.Sprintf("%d일", days)
}

// FormatRangeEnd renders the end field of a committed range, appending the
// inclusive duration when withDuration is set.
func FormatRangeEnd(start, end Date, withDuration bool) string {
	if end.IsZero() {
		return ""
	}
	text := FormatDisplay(end)
	if !withDuration || start.IsZero() || end.Before(start) {
		return text
	}
	return text + ", " + FormatDuration(InclusiveDays(start, end))
}
