// Package filtercal is the inline report-filter calendar: a floating range
// grid with no inputs, driven by clicks, programmatic ranges and labelled
// shortcuts.
package filtercal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jask/gymdesk/internal/calendar"
	"github.com/jask/gymdesk/internal/datecal"
)

// ErrInvalidRange is returned for ranges with an end but no start, or an
// end before the start.
var ErrInvalidRange = errors.New("invalid filter range")

// ErrUnknownShortcut is returned when a label matches no shortcut.
var ErrUnknownShortcut = errors.New("unknown shortcut")

// Surface redraws the calendar. Draw is called once on Mount and after
// every state change.
type Surface interface {
	Draw(c *Core)
}

type Options struct {
	Clock     func() time.Time
	WeekStart time.Weekday
	Min       datecal.Date
	Max       datecal.Date
	// Shortcuts nil uses DefaultShortcuts.
	Shortcuts []Shortcut
	OnSelect  func(calendar.Selection)
	Logger    *slog.Logger
}

// Core owns the filter grid and reports every selection change.
type Core struct {
	grid      *calendar.Grid
	surface   Surface
	shortcuts []Shortcut
	onSelect  func(calendar.Selection)
	log       *slog.Logger
}

func New(opts Options) *Core {
	shortcuts := opts.Shortcuts
	if shortcuts == nil {
		shortcuts = DefaultShortcuts(opts.WeekStart)
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Core{
		grid: calendar.New(calendar.Options{
			Mode:      calendar.ModeRange,
			Policy:    calendar.Floating{},
			Clock:     opts.Clock,
			WeekStart: opts.WeekStart,
			Min:       opts.Min,
			Max:       opts.Max,
		}),
		shortcuts: append([]Shortcut(nil), shortcuts...),
		onSelect:  opts.OnSelect,
		log:       log,
	}
}

func (c *Core) Grid() *calendar.Grid { return c.grid }
func (c *Core) Selection() calendar.Selection { return c.grid.Selection() }
func (c *Core) Shortcuts() []Shortcut { return append([]Shortcut(nil), c.shortcuts...) }

// Mount attaches the surface and draws the initial state.
func (c *Core) Mount(s Surface) {
	c.surface = s
	c.redraw()
}

// Range returns the selected endpoints; missing ones are zero.
func (c *Core) Range() (start, end datecal.Date) {
	sel := c.grid.Selection()
	if sel.HasStart() {
		start = sel.Start
	}
	if sel.HasEnd() {
		end = sel.End
	}
	return start, end
}

// Activate handles a click on a day cell.
func (c *Core) Activate(d datecal.Date) {
	ch := c.grid.Activate(d)
	if !ch.Changed() {
		return
	}
	c.redraw()
	c.notify()
}

func (c *Core) SetHover(d datecal.Date) {
	c.grid.SetHover(d)
	c.redraw()
}

func (c *Core) ClearHover() {
	c.grid.ClearHover()
	c.redraw()
}

func (c *Core) NavigateMonth(delta int) {
	c.grid.NavigateMonth(delta)
	c.redraw()
}

func (c *Core) NavigateYear(delta int) {
	c.grid.NavigateYear(delta)
	c.redraw()
}

func (c *Core) GoToday() {
	c.grid.GoToday()
	c.redraw()
}

// SetRange replaces the selection. A zero end leaves the range open; the
// view moves to the start's month.
func (c *Core) SetRange(start, end datecal.Date) error {
	if start.IsZero() && !end.IsZero() {
		return fmt.Errorf("set range: end %s without start: %w", end, ErrInvalidRange)
	}
	if !end.IsZero() && end.Before(start) {
		return fmt.Errorf("set range: %s..%s: %w", start, end, ErrInvalidRange)
	}
	sel := calendar.RangeOf(start, end)
	if err := c.grid.CheckBounds(sel); err != nil {
		return fmt.Errorf("set range: %w", err)
	}
	c.grid.ApplyExternal(sel)
	c.grid.CenterOn(start)
	c.redraw()
	c.notify()
	return nil
}

// SetRangeISO is SetRange for YYYY-MM-DD strings. Empty strings mean no
// date.
func (c *Core) SetRangeISO(start, end string) error {
	var s, e datecal.Date
	var err error
	if start != "" {
		if s, err = datecal.ParseLocalDate(start); err != nil {
			c.log.Debug("filter calendar: range rejected", "start", start, "end", end, "error", err)
			return fmt.Errorf("set range: %w", err)
		}
	}
	if end != "" {
		if e, err = datecal.ParseLocalDate(end); err != nil {
			c.log.Debug("filter calendar: range rejected", "start", start, "end", end, "error", err)
			return fmt.Errorf("set range: %w", err)
		}
	}
	return c.SetRange(s, e)
}

// ClearRange drops the selection and returns the view to today.
func (c *Core) ClearRange() {
	c.grid.ApplyExternal(calendar.EmptySelection())
	c.redraw()
	c.notify()
}

// ApplyShortcut resolves a possibly mistyped label and selects its range.
func (c *Core) ApplyShortcut(label string) (Shortcut, error) {
	s, ok := matchShortcut(c.shortcuts, label)
	if !ok {
		return Shortcut{}, fmt.Errorf("shortcut %q: %w", label, ErrUnknownShortcut)
	}
	start, end := s.Range(c.grid.Today())
	if err := c.SetRange(start, end); err != nil {
		return Shortcut{}, fmt.Errorf("shortcut %q: %w", s.Label, err)
	}
	c.log.Debug("filter calendar: shortcut applied", "query", label, "shortcut", s.Label)
	return s, nil
}

func (c *Core) redraw() {
	if c.surface != nil {
		c.surface.Draw(c)
	}
}

func (c *Core) notify() {
	if c.onSelect != nil {
		c.onSelect(c.grid.Selection())
	}
}
