package overlay

import "github.com/google/uuid"

// Anchor is the only thing an overlay needs from the element that triggers
// it: where it is on screen and how far the document is scrolled.
type Anchor interface {
	Bounds() Rect
	Scroll() Point
}

// Overlay is the floating panel owned by one picker. Placement is two-phase:
// the renderer reports the panel's real size through Measure, then Place
// computes the final position.
type Overlay struct {
	id      uuid.UUID
	anchor  Anchor
	open    bool
	size    Size
	pos     Point
	onClose func()
}

func New(anchor Anchor) *Overlay {
	return &Overlay{id: uuid.New(), anchor: anchor}
}

func (o *Overlay) ID() string {
	if o == nil {
		return ""
	}
	return o.id.String()
}

func (o *Overlay) IsOpen() bool {
	return o != nil && o.open
}

func (o *Overlay) Anchor() Anchor {
	return o.anchor
}

// SetAnchor moves the overlay to another trigger, as range pickers do when
// opened from the end input instead of the start input.
func (o *Overlay) SetAnchor(a Anchor) {
	if a != nil {
		o.anchor = a
	}
}

// OnClose registers fn to run every time the overlay goes from open to
// closed, whoever closes it.
func (o *Overlay) OnClose(fn func()) {
	o.onClose = fn
}

// Measure records the rendered size of the panel.
func (o *Overlay) Measure(s Size) {
	o.size = s
}

// Size returns the measured size, or DefaultSize before the first
// measurement.
func (o *Overlay) Size() Size {
	if o.size.Width <= 0 || o.size.Height <= 0 {
		return DefaultSize
	}
	return o.size
}

// Place positions the overlay against its anchor and returns the result.
func (o *Overlay) Place(p Positioner, viewport Size) Point {
	var trigger Rect
	var scroll Point
	if o.anchor != nil {
		trigger = o.anchor.Bounds()
		scroll = o.anchor.Scroll()
	}
	o.pos = p.Position(trigger, scroll, o.Size(), viewport)
	return o.pos
}

// Position is the last placement in document coordinates.
func (o *Overlay) Position() Point {
	return o.pos
}

// Contains reports whether a viewport point hits the panel or its trigger.
func (o *Overlay) Contains(pt Point) bool {
	if o == nil {
		return false
	}
	var scroll Point
	if o.anchor != nil {
		if o.anchor.Bounds().Contains(pt) {
			return true
		}
		scroll = o.anchor.Scroll()
	}
	size := o.Size()
	panel := Rect{
		Top:  o.pos.Y - scroll.Y,
		Left: o.pos.X - scroll.X,
	}
	panel.Right = panel.Left + size.Width
	panel.Bottom = panel.Top + size.Height
	return panel.Contains(pt)
}

func (o *Overlay) MarkOpen() {
	o.open = true
}

// MarkClosed closes the overlay and fires the close callback. Closing a
// closed overlay does nothing.
func (o *Overlay) MarkClosed() {
	if o == nil || !o.open {
		return
	}
	o.open = false
	if o.onClose != nil {
		o.onClose()
	}
}
