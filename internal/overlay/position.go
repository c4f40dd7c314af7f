// Package overlay places floating calendar panels next to their trigger and
// keeps at most one of them open at a time.
package overlay

// Rect is a box in viewport coordinates.
type Rect struct {
	Top    int
	Left   int
	Right  int
	Bottom int
}

func (r Rect) Width() int { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Contains reports whether p lies inside r (right and bottom exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Point is an (x, y) position; X grows rightwards, Y downwards.
type Point struct {
	X int
	Y int
}

type Size struct {
	Width  int
	Height int
}

// DefaultSize stands in for a panel that has not been measured yet.
var DefaultSize = Size{Width: 320, Height: 340}

// Positioner computes viewport-clamped placements.
type Positioner struct {
	// Gap separates the panel from its trigger.
	Gap int
	// Edge is the minimum distance kept from every viewport edge.
	Edge int
}

var DefaultPositioner = Positioner{Gap: 4, Edge: 8}

// Position places a panel of the given size below the trigger, flipping
// above when the bottom would overflow, left-aligned unless that overflows
// the right edge, and finally clamped inside the viewport. The result is in
// document coordinates: scroll offsets are added back.
func (p Positioner) Position(trigger Rect, scroll Point, size, viewport Size) Point {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}

	top := trigger.Bottom + p.Gap
	if top+size.Height > viewport.Height-p.Edge {
		top = trigger.Top - p.Gap - size.Height
	}
	left := trigger.Left
	if left+size.Width > viewport.Width-p.Edge {
		left = trigger.Right - size.Width
	}

	top = clamp(top, p.Edge, viewport.Height-size.Height-p.Edge)
	left = clamp(left, p.Edge, viewport.Width-size.Width-p.Edge)
	return Point{X: left + scroll.X, Y: top + scroll.Y}
}

// clamp keeps v within [lo, hi]; when the panel is larger than the room
// available, lo wins so the top-left corner stays visible.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
