package picker

import (
	"fmt"
	"log/slog"

	"github.com/jask/gymdesk/internal/calendar"
	"github.com/jask/gymdesk/internal/datecal"
	"github.com/jask/gymdesk/internal/overlay"
)

// Single is a one-input, one-date picker.
type Single struct {
	reg        *overlay.Registry
	input      Input
	overlay    *overlay.Overlay
	grid       *calendar.Grid
	positioner overlay.Positioner
	onSelect   func(Value)
	log        *slog.Logger
}

func NewSingle(reg *overlay.Registry, input Input, opts Options) *Single {
	p := &Single{
		reg:   reg,
		input: input,
		grid: calendar.New(calendar.Options{
			Mode:      calendar.ModeSingle,
			Clock:     opts.Clock,
			WeekStart: opts.WeekStart,
			Min:       opts.Min,
			Max:       opts.Max,
		}),
		overlay:    overlay.New(input),
		positioner: opts.positioner(),
		onSelect:   opts.OnSelect,
		log:        opts.logger(),
	}
	p.overlay.OnClose(p.grid.ClearHover)
	if opts.DefaultStart != "" {
		if d, err := datecal.ParseLocalDate(opts.DefaultStart); err == nil {
			p.grid.ApplyExternal(calendar.SingleDate(d))
			p.render()
		}
	}
	return p
}

func (p *Single) Grid() *calendar.Grid { return p.grid }
func (p *Single) Overlay() *overlay.Overlay { return p.overlay }
func (p *Single) IsOpen() bool { return p.overlay.IsOpen() }

// Open shows the calendar under the input, closing any other open overlay.
func (p *Single) Open() {
	p.reg.Activate(p.overlay)
	d, _ := p.grid.Selection().Date()
	p.grid.CenterOn(d)
	p.overlay.Place(p.positioner, p.reg.Viewport())
	p.overlay.MarkOpen()
}

// Relayout applies the measured panel size and recomputes the placement.
func (p *Single) Relayout(size overlay.Size) {
	p.overlay.Measure(size)
	p.overlay.Place(p.positioner, p.reg.Viewport())
}

// Close hides the calendar. Closing a closed picker does nothing.
func (p *Single) Close() {
	if !p.overlay.IsOpen() {
		return
	}
	p.reg.Deactivate(p.overlay)
	p.overlay.MarkClosed()
}

// Activate handles a click on a day cell: the date is committed, written to
// the input and the calendar closes.
func (p *Single) Activate(d datecal.Date) {
	ch := p.grid.Activate(d)
	if !ch.Committed() {
		return
	}
	p.render()
	p.Close()
	p.notify()
}

// SetDate selects a date given as YYYY-MM-DD without opening or closing the
// calendar. Invalid values leave the picker untouched.
func (p *Single) SetDate(s string) error {
	d, err := datecal.ParseLocalDate(s)
	if err != nil {
		p.log.Debug("single picker: date rejected", "value", s, "error", err)
		return fmt.Errorf("set date: %w", err)
	}
	sel := calendar.SingleDate(d)
	if err := p.grid.CheckBounds(sel); err != nil {
		p.log.Debug("single picker: date rejected", "value", s, "error", err)
		return fmt.Errorf("set date: %w", err)
	}
	p.grid.ApplyExternal(sel)
	p.render()
	p.notify()
	return nil
}

// Clear drops the selection and blanks the input.
func (p *Single) Clear() {
	p.grid.ApplyExternal(calendar.EmptySelection())
	p.render()
}

// Value returns the selected date as YYYY-MM-DD, or "".
func (p *Single) Value() string {
	d, ok := p.grid.Selection().Date()
	if !ok {
		return ""
	}
	return datecal.FormatLocalDate(d)
}

func (p *Single) render() {
	d, _ := p.grid.Selection().Date()
	p.input.SetText(datecal.FormatDisplay(d))
}

func (p *Single) notify() {
	if p.onSelect != nil {
		p.onSelect(Value{Start: p.Value()})
	}
}
