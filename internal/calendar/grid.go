// Package calendar holds the month-view date grid and its selection state
// machine. It knows nothing about rendering: front ends feed it activations,
// hovers and navigation and draw the cells it yields.
package calendar

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/jask/gymdesk/internal/datecal"
)

// ErrOutOfBounds is returned for selections with an endpoint outside the
// grid's Min/Max.
var ErrOutOfBounds = errors.New("date out of bounds")

// Options configure a Grid. Mode and Policy are expected to stay fixed for
// the life of the grid.
type Options struct {
	Mode Mode
	// Policy is used in range mode; nil means Floating.
	Policy RangeSelectionPolicy
	// Clock is read once, at construction, to fix "today".
	Clock     func() time.Time
	WeekStart time.Weekday
	// Min and Max bound the selectable dates; zero means unbounded.
	Min datecal.Date
	Max datecal.Date
}

// Cell is one slot of the month view. Blank cells pad the first week so day
// 1 lines up with its weekday column.
type Cell struct {
	Date    datecal.Date
	Blank   bool
	Weekday time.Weekday

	IsToday    bool
	IsStart    bool
	IsEnd      bool
	IsInRange  bool
	IsHoverEnd bool
	IsDisabled bool
}

// Grid is a month view plus its selection, hover preview and selecting
// pointer.
type Grid struct {
	mode      Mode
	policy    RangeSelectionPolicy
	today     datecal.Date
	weekStart time.Weekday
	min       datecal.Date
	max       datecal.Date

	view    datecal.ViewMonth
	sel     Selection
	hover   datecal.Date
	pointer Pointer
}

func New(opts Options) *Grid {
	g := &Grid{
		mode:      opts.Mode,
		policy:    opts.Policy,
		today:     datecal.Today(opts.Clock),
		weekStart: opts.WeekStart,
		min:       opts.Min,
		max:       opts.Max,
	}
	if g.policy == nil {
		g.policy = Floating{}
	}
	g.view = g.today.ViewMonth()
	return g
}

func (g *Grid) Mode() Mode { return g.mode }
func (g *Grid) Policy() RangeSelectionPolicy { return g.policy }
func (g *Grid) Today() datecal.Date { return g.today }
func (g *Grid) View() datecal.ViewMonth { return g.view }
func (g *Grid) Selection() Selection { return g.sel }
func (g *Grid) Pointer() Pointer { return g.pointer }
func (g *Grid) WeekStart() time.Weekday { return g.weekStart }
func (g *Grid) SetPointer(p Pointer) { g.pointer = p }
func (g *Grid) Duration() (int, bool) { return g.sel.Duration() }
func (g *Grid) Bounds() (datecal.Date, datecal.Date) { return g.min, g.max }

// Hover returns the hover preview date, if one is set.
func (g *Grid) Hover() (datecal.Date, bool) {
	return g.hover, !g.hover.IsZero()
}

// SetMode switches between single and range selection, dropping any
// selection made under the old mode.
func (g *Grid) SetMode(m Mode) {
	if g.mode == m {
		return
	}
	g.mode = m
	g.reset()
}

// SetPolicy replaces the range policy, dropping the current selection.
func (g *Grid) SetPolicy(p RangeSelectionPolicy) {
	if p == nil {
		p = Floating{}
	}
	if g.policy == p {
		return
	}
	g.policy = p
	g.reset()
}

func (g *Grid) reset() {
	g.sel = EmptySelection()
	g.hover = datecal.Date{}
	g.pointer = PointerStart
}

// NavigateMonth moves the view by delta months. Selection is untouched.
func (g *Grid) NavigateMonth(delta int) {
	g.view = g.view.AddMonths(delta)
}

// NavigateYear moves the view by delta years. Selection is untouched.
func (g *Grid) NavigateYear(delta int) {
	g.view = g.view.AddYears(delta)
}

// GoToday shows the month containing today.
func (g *Grid) GoToday() {
	g.view = g.today.ViewMonth()
}

// SetView shows an arbitrary month.
func (g *Grid) SetView(v datecal.ViewMonth) {
	g.view = datecal.NewViewMonth(v.Year, v.Month)
}

// CenterOn shows the month of the first non-zero date, or today's month when
// every candidate is zero.
func (g *Grid) CenterOn(candidates ...datecal.Date) {
	for _, d := range candidates {
		if !d.IsZero() {
			g.view = d.ViewMonth()
			return
		}
	}
	g.GoToday()
}

// Disabled reports whether d lies outside the selectable bounds.
func (g *Grid) Disabled(d datecal.Date) bool {
	if !g.min.IsZero() && d.Before(g.min) {
		return true
	}
	if !g.max.IsZero() && d.After(g.max) {
		return true
	}
	return false
}

// CheckBounds reports an endpoint of sel that the grid would show disabled.
func (g *Grid) CheckBounds(sel Selection) error {
	for _, d := range []datecal.Date{sel.Start, sel.End} {
		if !d.IsZero() && g.Disabled(d) {
			return fmt.Errorf("%s: %w", d, ErrOutOfBounds)
		}
	}
	return nil
}

// Activate applies a cell activation. Zero or disabled dates leave the state
// unchanged.
func (g *Grid) Activate(d datecal.Date) Change {
	before := g.sel
	if d.IsZero() || g.Disabled(d) {
		return Change{Before: before, After: before, Rejected: true}
	}
	switch g.mode {
	case ModeSingle:
		g.sel = SingleDate(d)
	default:
		g.sel, g.pointer = g.policy.Next(g.sel, g.pointer, d)
	}
	if !g.sel.MidRange() {
		g.hover = datecal.Date{}
	}
	return newChange(before, g.sel)
}

// SetHover records a hover preview. It only sticks while a range is
// mid-selection.
func (g *Grid) SetHover(d datecal.Date) {
	if d.IsZero() || !g.sel.MidRange() || g.Disabled(d) {
		g.hover = datecal.Date{}
		return
	}
	g.hover = d
}

func (g *Grid) ClearHover() {
	g.hover = datecal.Date{}
}

// ApplyExternal replaces the selection programmatically and re-centers the
// view on the end, else the start, else today. Selections that are invalid
// or do not belong to the grid's mode, or that reach outside Min/Max, are
// ignored and false is returned.
func (g *Grid) ApplyExternal(sel Selection) bool {
	if !sel.Valid() || g.CheckBounds(sel) != nil {
		return false
	}
	switch g.mode {
	case ModeSingle:
		if sel.Kind != Single && sel.Kind != Empty {
			return false
		}
	default:
		if sel.Kind == Single {
			return false
		}
	}
	g.sel = sel
	g.hover = datecal.Date{}
	g.CenterOn(sel.End, sel.Start)
	return true
}

// Cells yields the cells of the current view. The sequence captures the
// state at call time and can be ranged over any number of times.
func (g *Grid) Cells() iter.Seq[Cell] {
	view := g.view
	sel := g.sel
	hover := g.hover
	mode := g.mode
	today := g.today
	weekStart := g.weekStart
	disabled := g.Disabled

	return func(yield func(Cell) bool) {
		blanks := view.LeadingBlanks(weekStart)
		for i := 0; i < blanks; i++ {
			if !yield(Cell{Blank: true, Weekday: time.Weekday((int(weekStart) + i) % 7)}) {
				return
			}
		}
		for day := 1; day <= view.Days(); day++ {
			d := datecal.Date{Year: view.Year, Month: view.Month, Day: day}
			if !yield(cellFor(d, mode, sel, hover, today, disabled(d))) {
				return
			}
		}
	}
}

func cellFor(d datecal.Date, mode Mode, sel Selection, hover, today datecal.Date, disabled bool) Cell {
	c := Cell{
		Date:       d,
		Weekday:    d.Weekday(),
		IsToday:    d.Equal(today),
		IsDisabled: disabled,
	}
	if mode == ModeSingle {
		if picked, ok := sel.Date(); ok && picked.Equal(d) {
			c.IsStart = true
			c.IsEnd = true
		}
		return c
	}

	c.IsStart = sel.HasStart() && d.Equal(sel.Start)
	c.IsEnd = sel.HasEnd() && d.Equal(sel.End)
	if !sel.HasStart() {
		return c
	}
	previewEnd := hover
	if sel.HasEnd() {
		previewEnd = sel.End
	}
	if previewEnd.IsZero() {
		return c
	}
	lo := datecal.Min(sel.Start, previewEnd)
	hi := datecal.Max(sel.Start, previewEnd)
	c.IsInRange = lo.Before(d) && d.Before(hi)
	c.IsHoverEnd = !sel.HasEnd() && d.Equal(hover)
	return c
}

// CellAt returns the cell at index i of the sequence (blanks included).
func (g *Grid) CellAt(i int) (Cell, bool) {
	n := 0
	for c := range g.Cells() {
		if n == i {
			return c, true
		}
		n++
	}
	return Cell{}, false
}
