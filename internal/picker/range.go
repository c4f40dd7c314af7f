package picker

import (
	"fmt"
	"log/slog"

	"github.com/jask/gymdesk/internal/calendar"
	"github.com/jask/gymdesk/internal/datecal"
	"github.com/jask/gymdesk/internal/overlay"
)

// Range is a start/end input pair sharing one anchored calendar.
type Range struct {
	reg          *overlay.Registry
	start        Input
	end          Input
	overlay      *overlay.Overlay
	grid         *calendar.Grid
	positioner   overlay.Positioner
	presets      []int
	showDuration bool
	onSelect     func(Value)
	log          *slog.Logger
}

func NewRange(reg *overlay.Registry, start, end Input, opts Options) *Range {
	presets := opts.Presets
	if presets == nil {
		presets = DefaultPresets
	}
	p := &Range{
		reg:   reg,
		start: start,
		end:   end,
		grid: calendar.New(calendar.Options{
			Mode:      calendar.ModeRange,
			Policy:    calendar.Anchored{},
			Clock:     opts.Clock,
			WeekStart: opts.WeekStart,
			Min:       opts.Min,
			Max:       opts.Max,
		}),
		overlay:      overlay.New(start),
		positioner:   opts.positioner(),
		presets:      append([]int(nil), presets...),
		showDuration: opts.ShowDuration,
		onSelect:     opts.OnSelect,
		log:          opts.logger(),
	}
	p.overlay.OnClose(p.grid.ClearHover)
	if opts.DefaultStart != "" || opts.DefaultEnd != "" {
		if sel, err := parseRange(opts.DefaultStart, opts.DefaultEnd); err == nil {
			p.grid.ApplyExternal(sel)
			p.render()
		}
	}
	return p
}

func (p *Range) Grid() *calendar.Grid { return p.grid }
func (p *Range) Overlay() *overlay.Overlay { return p.overlay }
func (p *Range) IsOpen() bool { return p.overlay.IsOpen() }
func (p *Range) Pointer() calendar.Pointer { return p.grid.Pointer() }
func (p *Range) Presets() []int { return append([]int(nil), p.presets...) }
func (p *Range) Duration() (int, bool) { return p.grid.Duration() }

// Open shows the calendar for one of the two inputs. The view starts on the
// date already in that slot, else the other slot, else today.
func (p *Range) Open(which calendar.Pointer) {
	p.grid.SetPointer(which)
	sel := p.grid.Selection()
	var own, other datecal.Date
	anchor := p.start
	if which == calendar.PointerEnd {
		anchor = p.end
		if sel.HasEnd() {
			own = sel.End
		}
		if sel.HasStart() {
			other = sel.Start
		}
	} else {
		if sel.HasStart() {
			own = sel.Start
		}
		if sel.HasEnd() {
			other = sel.End
		}
	}
	p.grid.CenterOn(own, other)

	p.overlay.SetAnchor(anchor)
	p.reg.Activate(p.overlay)
	p.overlay.Place(p.positioner, p.reg.Viewport())
	p.overlay.MarkOpen()
}

// Relayout applies the measured panel size and recomputes the placement.
func (p *Range) Relayout(size overlay.Size) {
	p.overlay.Measure(size)
	p.overlay.Place(p.positioner, p.reg.Viewport())
}

// Close hides the calendar. Committed endpoints are kept; only the hover
// preview is dropped.
func (p *Range) Close() {
	if !p.overlay.IsOpen() {
		return
	}
	p.reg.Deactivate(p.overlay)
	p.overlay.MarkClosed()
}

// Activate handles a click on a day cell. Committing an end closes the
// calendar.
func (p *Range) Activate(d datecal.Date) {
	ch := p.grid.Activate(d)
	if !ch.Changed() {
		return
	}
	p.render()
	if ch.Committed() {
		p.Close()
	}
	if ch.After.Kind == calendar.RangeSelected {
		p.notify()
	}
}

// PresetsVisible reports whether preset buttons apply: the end is being
// picked, a start exists and no end is committed yet.
func (p *Range) PresetsVisible() bool {
	sel := p.grid.Selection()
	return len(p.presets) > 0 &&
		p.grid.Pointer() == calendar.PointerEnd &&
		sel.HasStart() && !sel.HasEnd()
}

// ApplyPreset sets the end to start+(days-1), or pushes an existing end out
// by days, then runs the same commit path as clicking that end.
func (p *Range) ApplyPreset(days int) bool {
	sel := p.grid.Selection()
	if days <= 0 || !sel.HasStart() {
		return false
	}
	end := sel.Start.AddDays(days - 1)
	if sel.HasEnd() {
		end = sel.End.AddDays(days)
	}
	if p.grid.Disabled(end) {
		p.log.Debug("range picker: preset end out of bounds", "days", days, "end", end.String())
		return false
	}
	p.grid.ApplyExternal(calendar.Selected(sel.Start, end))
	p.render()
	p.Close()
	p.notify()
	return true
}

// SetRange assigns both endpoints directly, bypassing the click state
// machine. The end may be empty. Invalid input leaves the picker untouched.
func (p *Range) SetRange(start, end string) error {
	sel, err := parseRange(start, end)
	if err != nil {
		p.log.Debug("range picker: range rejected", "start", start, "end", end, "error", err)
		return fmt.Errorf("set range: %w", err)
	}
	if err := p.grid.CheckBounds(sel); err != nil {
		p.log.Debug("range picker: range rejected", "start", start, "end", end, "error", err)
		return fmt.Errorf("set range: %w", err)
	}
	p.grid.ApplyExternal(sel)
	p.render()
	if sel.Kind == calendar.RangeSelected {
		p.notify()
	}
	return nil
}

// Clear drops both endpoints and blanks the inputs.
func (p *Range) Clear() {
	p.grid.ApplyExternal(calendar.EmptySelection())
	p.grid.SetPointer(calendar.PointerStart)
	p.render()
}

// Value returns both endpoints as YYYY-MM-DD strings; missing ones are "".
func (p *Range) Value() Value {
	sel := p.grid.Selection()
	var v Value
	if sel.HasStart() {
		v.Start = datecal.FormatLocalDate(sel.Start)
	}
	if sel.HasEnd() {
		v.End = datecal.FormatLocalDate(sel.End)
	}
	return v
}

func (p *Range) render() {
	sel := p.grid.Selection()
	var start, end datecal.Date
	if sel.HasStart() {
		start = sel.Start
	}
	if sel.HasEnd() {
		end = sel.End
	}
	p.start.SetText(datecal.FormatDisplay(start))
	p.end.SetText(datecal.FormatRangeEnd(start, end, p.showDuration))
}

func (p *Range) notify() {
	if p.onSelect != nil {
		p.onSelect(p.Value())
	}
}

func parseRange(start, end string) (calendar.Selection, error) {
	s, err := datecal.ParseLocalDate(start)
	if err != nil {
		return calendar.Selection{}, err
	}
	var e datecal.Date
	if end != "" {
		if e, err = datecal.ParseLocalDate(end); err != nil {
			return calendar.Selection{}, err
		}
		if e.Before(s) {
			return calendar.Selection{}, fmt.Errorf("%s..%s: %w", start, end, ErrInvalidRange)
		}
	}
	return calendar.RangeOf(s, e), nil
}
