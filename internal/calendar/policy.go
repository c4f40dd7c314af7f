package calendar

import "github.com/jask/gymdesk/internal/datecal"

// RangeSelectionPolicy decides how a cell activation moves a range
// selection. Implementations are pure: they receive the current selection
// and pointer and return the next ones.
type RangeSelectionPolicy interface {
	Name() string
	Next(sel Selection, ptr Pointer, d datecal.Date) (Selection, Pointer)
}

// Floating is the two-click policy: the first click starts a range, the
// second commits it, and any click on a committed range starts over. The
// pointer is ignored.
type Floating struct{}

func (Floating) Name() string { return "floating" }

func (Floating) Next(sel Selection, ptr Pointer, d datecal.Date) (Selection, Pointer) {
	if sel.Kind == RangeSelecting && !d.Before(sel.Start) {
		return Selected(sel.Start, d), ptr
	}
	return Selecting(d), ptr
}

// Anchored is the dual-input policy: the pointer, set by whichever input
// opened the calendar, decides which endpoint the click assigns.
type Anchored struct{}

func (Anchored) Name() string { return "anchored" }

func (Anchored) Next(sel Selection, ptr Pointer, d datecal.Date) (Selection, Pointer) {
	if ptr == PointerStart {
		if sel.HasEnd() && !d.After(sel.End) {
			return Selected(d, sel.End), PointerEnd
		}
		return Selecting(d), PointerEnd
	}

	if !sel.HasStart() {
		return EndOnly(d), PointerStart
	}
	if d.Before(sel.Start) {
		// Swap: the earlier click becomes the new start and the end stays open.
		return Selecting(d), PointerEnd
	}
	return Selected(sel.Start, d), PointerEnd
}
