package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/gymdesk/internal/calendar"
	"github.com/jask/gymdesk/internal/datecal"
	"github.com/jask/gymdesk/internal/overlay"
)

const (
	cellWidth    = 4
	gridWidth    = 7 * cellWidth
	panelInsetX  = 2 // border + horizontal padding
	panelInsetY  = 1 // border
	buttonMargin = 1
)

type hitKind int

const (
	hitDay hitKind = iota
	hitPrevMonth
	hitNextMonth
	hitPreset
	hitShortcut
)

// hit is a clickable region of a rendered panel, relative to the panel's
// top-left cell.
type hit struct {
	rect  overlay.Rect
	kind  hitKind
	date  datecal.Date
	days  int
	label string
}

// panel is a rendered calendar plus where its clickable parts landed.
type panel struct {
	view string
	hits []hit
	size overlay.Size
}

func (p panel) hitAt(origin, pt overlay.Point) (hit, bool) {
	rel := overlay.Point{X: pt.X - origin.X, Y: pt.Y - origin.Y}
	for _, h := range p.hits {
		if h.rect.Contains(rel) {
			return h, true
		}
	}
	return hit{}, false
}

// calendarPanel describes one panel render.
type calendarPanel struct {
	grid    *calendar.Grid
	cursor  datecal.Date
	focused bool
	// footer lines under the grid, such as a duration readout.
	notes []string
	// buttons are laid out under the grid and wrap at the grid width.
	buttons []button
}

type button struct {
	text  string
	kind  hitKind
	days  int
	label string
}

func (c calendarPanel) render(st styles) panel {
	var lines []string
	var hits []hit

	title := lipgloss.PlaceHorizontal(gridWidth-4, lipgloss.Center, st.title.Render(c.grid.View().Title()))
	lines = append(lines, st.arrow.Render("‹ ")+title+st.arrow.Render(" ›"))
	hits = append(hits,
		hit{rect: overlay.Rect{Top: 0, Left: 0, Right: 2, Bottom: 1}, kind: hitPrevMonth},
		hit{rect: overlay.Rect{Top: 0, Left: gridWidth - 2, Right: gridWidth, Bottom: 1}, kind: hitNextMonth},
	)
	lines = append(lines, weekdayRow(c.grid.WeekStart(), st))

	var row strings.Builder
	col, line := 0, len(lines)
	flush := func() {
		lines = append(lines, pad(row.String(), gridWidth))
		row.Reset()
		col = 0
		line++
	}
	for cell := range c.grid.Cells() {
		if cell.Blank {
			row.WriteString(strings.Repeat(" ", cellWidth))
		} else {
			row.WriteString(c.cellStyle(cell, st).Render(fmt.Sprintf(" %2d ", cell.Date.Day)))
			hits = append(hits, hit{
				rect: overlay.Rect{Top: line, Left: col * cellWidth, Right: (col + 1) * cellWidth, Bottom: line + 1},
				kind: hitDay,
				date: cell.Date,
			})
		}
		col++
		if col == 7 {
			flush()
		}
	}
	if col > 0 {
		flush()
	}

	for _, n := range c.notes {
		lines = append(lines, fit(n, gridWidth))
	}

	if len(c.buttons) > 0 {
		var b strings.Builder
		x := 0
		top := len(lines)
		for _, btn := range c.buttons {
			w := ansi.StringWidth(btn.text) + 2
			if x > 0 && x+w > gridWidth {
				lines = append(lines, pad(b.String(), gridWidth))
				b.Reset()
				x = 0
				top++
			}
			if x > 0 {
				b.WriteString(strings.Repeat(" ", buttonMargin))
				x += buttonMargin
			}
			b.WriteString(st.button.Render(" " + btn.text + " "))
			hits = append(hits, hit{
				rect:  overlay.Rect{Top: top, Left: x, Right: x + w, Bottom: top + 1},
				kind:  btn.kind,
				days:  btn.days,
				label: btn.label,
			})
			x += w
		}
		lines = append(lines, pad(b.String(), gridWidth))
	}

	style := st.panel
	if c.focused {
		style = st.panelOn
	}
	view := style.Render(strings.Join(lines, "\n"))
	for i := range hits {
		hits[i].rect.Top += panelInsetY
		hits[i].rect.Bottom += panelInsetY
		hits[i].rect.Left += panelInsetX
		hits[i].rect.Right += panelInsetX
	}
	return panel{
		view: view,
		hits: hits,
		size: overlay.Size{Width: lipgloss.Width(view), Height: lipgloss.Height(view)},
	}
}

func (c calendarPanel) cellStyle(cell calendar.Cell, st styles) lipgloss.Style {
	var s lipgloss.Style
	switch {
	case cell.IsDisabled:
		s = st.disabled
	case cell.IsStart || cell.IsEnd:
		s = st.endpoint
	case cell.IsHoverEnd:
		s = st.hoverEnd
	case cell.IsInRange:
		s = st.inRange
	case cell.IsToday:
		s = st.today
	default:
		s = st.day
		switch cell.Weekday {
		case time.Sunday:
			s = st.sunday
		case time.Saturday:
			s = st.saturday
		}
	}
	if cell.IsToday && !cell.IsDisabled {
		s = s.Underline(true)
	}
	if c.focused && cell.Date.Equal(c.cursor) {
		s = s.Inherit(st.cursor)
	}
	return s
}

func weekdayRow(weekStart time.Weekday, st styles) string {
	var b strings.Builder
	for i, label := range datecal.WeekdayHeader(weekStart) {
		style := st.weekday
		switch time.Weekday((int(weekStart) + i) % 7) {
		case time.Sunday:
			style = st.sunday
		case time.Saturday:
			style = st.saturday
		}
		b.WriteString(style.Render(" " + label + " "))
	}
	return b.String()
}
