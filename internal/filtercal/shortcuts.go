package filtercal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/jask/gymdesk/internal/datecal"
)

// Shortcut is a labelled range computed relative to today. Both ends are
// inclusive.
type Shortcut struct {
	Label string
	Range func(today datecal.Date) (start, end datecal.Date)
}

// Shortcut kinds accepted by NewShortcut.
const (
	KindToday      = "today"
	KindYesterday  = "yesterday"
	KindThisWeek   = "this_week"
	KindLastWeek   = "last_week"
	KindThisMonth  = "this_month"
	KindLastMonth  = "last_month"
	KindLastDays   = "last_days"
	KindLastMonths = "last_months"
	KindThisYear   = "this_year"
)

// NewShortcut builds a shortcut from a kind name. n is the day or month
// count for last_days and last_months and is ignored otherwise.
func NewShortcut(label, kind string, n int, weekStart time.Weekday) (Shortcut, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Shortcut{}, fmt.Errorf("shortcut %q: label is required", kind)
	}
	var fn func(datecal.Date) (datecal.Date, datecal.Date)
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindToday:
		fn = func(t datecal.Date) (datecal.Date, datecal.Date) { return t, t }
	case KindYesterday:
		fn = func(t datecal.Date) (datecal.Date, datecal.Date) {
			y := t.AddDays(-1)
			return y, y
		}
	case KindThisWeek:
		fn = func(t datecal.Date) (datecal.Date, datecal.Date) {
			start := weekOf(t, weekStart)
			return start, start.AddDays(6)
		}
	case KindLastWeek:
		fn = func(t datecal.Date) (datecal.Date, datecal.Date) {
			start := weekOf(t, weekStart).AddDays(-7)
			return start, start.AddDays(6)
		}
	case KindThisMonth:
		fn = func(t datecal.Date) (datecal.Date, datecal.Date) {
			first := t.ViewMonth().First()
			return first, first.AddMonths(1).AddDays(-1)
		}
	case KindLastMonth:
		fn = func(t datecal.Date) (datecal.Date, datecal.Date) {
			first := t.ViewMonth().AddMonths(-1).First()
			return first, first.AddMonths(1).AddDays(-1)
		}
	case KindLastDays:
		if n <= 0 {
			return Shortcut{}, fmt.Errorf("shortcut %q: %s needs a positive count", label, kind)
		}
		fn = func(t datecal.Date) (datecal.Date, datecal.Date) { return t.AddDays(-(n - 1)), t }
	case KindLastMonths:
		if n <= 0 {
			return Shortcut{}, fmt.Errorf("shortcut %q: %s needs a positive count", label, kind)
		}
		fn = func(t datecal.Date) (datecal.Date, datecal.Date) { return t.AddMonths(-n), t }
	case KindThisYear:
		fn = func(t datecal.Date) (datecal.Date, datecal.Date) {
			return datecal.New(t.Year, time.January, 1), t
		}
	default:
		return Shortcut{}, fmt.Errorf("shortcut %q: unknown kind %q", label, kind)
	}
	return Shortcut{Label: label, Range: fn}, nil
}

// DefaultShortcuts is the shortcut bar shown when no definitions file
// overrides it.
func DefaultShortcuts(weekStart time.Weekday) []Shortcut {
	defs := []struct {
		label string
		kind  string
		n     int
	}{
		{"오늘", KindToday, 0},
		{"어제", KindYesterday, 0},
		{"이번 주", KindThisWeek, 0},
		{"지난 주", KindLastWeek, 0},
		{"이번 달", KindThisMonth, 0},
		{"지난 달", KindLastMonth, 0},
		{"최근 7일", KindLastDays, 7},
		{"최근 30일", KindLastDays, 30},
		{"최근 3개월", KindLastMonths, 3},
		{"올해", KindThisYear, 0},
	}
	out := make([]Shortcut, 0, len(defs))
	for _, d := range defs {
		s, err := NewShortcut(d.label, d.kind, d.n, weekStart)
		if err != nil {
			panic(err)
		}
		out = append(out, s)
	}
	return out
}

func weekOf(d datecal.Date, weekStart time.Weekday) datecal.Date {
	back := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDays(-back)
}

// matchShortcut resolves a typed label: exact match ignoring case and
// spaces first, then the best in-order character match, then the closest
// label within two edits.
func matchShortcut(shortcuts []Shortcut, query string) (Shortcut, bool) {
	q := squash(query)
	if q == "" {
		return Shortcut{}, false
	}
	for _, s := range shortcuts {
		if squash(s.Label) == q {
			return s, true
		}
	}

	type scored struct {
		idx   int
		score int
	}
	var hits []scored
	for i, s := range shortcuts {
		if ok, score := fuzzyMatchScore(squash(s.Label), q); ok {
			hits = append(hits, scored{idx: i, score: score})
		}
	}
	if len(hits) > 0 {
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
		return shortcuts[hits[0].idx], true
	}

	best, bestDist := -1, 3
	for i, s := range shortcuts {
		if dist := levenshtein.ComputeDistance(squash(s.Label), q); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return Shortcut{}, false
	}
	return shortcuts[best], true
}

func squash(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// fuzzyMatchScore reports whether every rune of query appears in label in
// order, scoring prefix and consecutive matches higher.
func fuzzyMatchScore(label, query string) (bool, int) {
	l := []rune(label)
	q := []rune(query)

	matchIdx := make([]int, 0, len(q))
	from := 0
	for _, ch := range q {
		found := false
		for j := from; j < len(l); j++ {
			if l[j] == ch {
				matchIdx = append(matchIdx, j)
				from = j + 1
				found = true
				break
			}
		}
		if !found {
			return false, 0
		}
	}

	score := len(q)
	if len(matchIdx) > 0 && matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if len(l) == len(q) {
		score += 20
	}
	return true, score
}
