package calendar

import (
	"fmt"

	"github.com/jask/gymdesk/internal/datecal"
)

// Mode selects between single-date and range selection.
type Mode int

const (
	ModeSingle Mode = iota
	ModeRange
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeRange:
		return "range"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Kind tags the variant held by a Selection.
type Kind int

const (
	Empty Kind = iota
	Single
	// RangeSelecting has a start and no committed end.
	RangeSelecting
	// RangeSelected has both endpoints with Start <= End.
	RangeSelected
	// RangeEndOnly has an end but no start. Only the anchored policy
	// produces it, when the end slot is filled first.
	RangeEndOnly
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Single:
		return "single"
	case RangeSelecting:
		return "selecting"
	case RangeSelected:
		return "selected"
	case RangeEndOnly:
		return "end-only"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Selection is the committed selection state of a grid. Which date fields
// are meaningful depends on Kind; a Single selection stores its date in
// Start.
type Selection struct {
	Kind  Kind
	Start datecal.Date
	End   datecal.Date
}

func EmptySelection() Selection {
	return Selection{}
}

func SingleDate(d datecal.Date) Selection {
	return Selection{Kind: Single, Start: d}
}

func Selecting(start datecal.Date) Selection {
	return Selection{Kind: RangeSelecting, Start: start}
}

// Selected builds a committed range. Callers must pass start <= end; use
// Valid to check values from outside the state machine.
func Selected(start, end datecal.Date) Selection {
	return Selection{Kind: RangeSelected, Start: start, End: end}
}

func EndOnly(end datecal.Date) Selection {
	return Selection{Kind: RangeEndOnly, End: end}
}

// RangeOf builds the range selection implied by two optional endpoints.
func RangeOf(start, end datecal.Date) Selection {
	switch {
	case start.IsZero() && end.IsZero():
		return EmptySelection()
	case end.IsZero():
		return Selecting(start)
	case start.IsZero():
		return EndOnly(end)
	default:
		return Selected(start, end)
	}
}

// Date returns the single selected date, if any.
func (s Selection) Date() (datecal.Date, bool) {
	if s.Kind != Single {
		return datecal.Date{}, false
	}
	return s.Start, true
}

func (s Selection) HasStart() bool {
	return s.Kind == RangeSelecting || s.Kind == RangeSelected
}

func (s Selection) HasEnd() bool {
	return s.Kind == RangeSelected || s.Kind == RangeEndOnly
}

// MidRange reports whether a start is set and the end is still open; hover
// previews only apply in this state.
func (s Selection) MidRange() bool {
	return s.Kind == RangeSelecting
}

// Valid reports whether the fields agree with Kind.
func (s Selection) Valid() bool {
	switch s.Kind {
	case Empty:
		return s.Start.IsZero() && s.End.IsZero()
	case Single, RangeSelecting:
		return !s.Start.IsZero() && s.End.IsZero()
	case RangeSelected:
		return !s.Start.IsZero() && !s.End.IsZero() && !s.Start.After(s.End)
	case RangeEndOnly:
		return s.Start.IsZero() && !s.End.IsZero()
	default:
		return false
	}
}

// Duration returns the inclusive day count of a committed range.
func (s Selection) Duration() (int, bool) {
	if s.Kind != RangeSelected {
		return 0, false
	}
	return datecal.InclusiveDays(s.Start, s.End), true
}

func (s Selection) String() string {
	switch s.Kind {
	case Single:
		return "single(" + s.Start.String() + ")"
	case RangeSelecting:
		return "selecting(" + s.Start.String() + ")"
	case RangeSelected:
		return "selected(" + s.Start.String() + ".." + s.End.String() + ")"
	case RangeEndOnly:
		return "end-only(" + s.End.String() + ")"
	default:
		return "empty"
	}
}

// Pointer says which endpoint the next activation sets under the anchored
// policy.
type Pointer int

const (
	PointerStart Pointer = iota
	PointerEnd
)

func (p Pointer) String() string {
	if p == PointerEnd {
		return "end"
	}
	return "start"
}

// Change describes the effect of one activation.
type Change struct {
	Before Selection
	After  Selection
	// StartSet and EndSet report endpoints assigned a new value.
	StartSet bool
	EndSet   bool
	// EndCleared reports an end that existed before and is gone now.
	EndCleared bool
	// Rejected marks an activation the grid refused (zero or disabled date).
	Rejected bool
}

func newChange(before, after Selection) Change {
	c := Change{Before: before, After: after}
	switch after.Kind {
	case Single:
		c.StartSet = !before.Start.Equal(after.Start) || before.Kind != Single
	default:
		c.StartSet = after.HasStart() && (!before.HasStart() || !before.Start.Equal(after.Start))
		c.EndSet = after.HasEnd() && (!before.HasEnd() || !before.End.Equal(after.End))
		c.EndCleared = before.HasEnd() && !after.HasEnd()
	}
	return c
}

// Changed reports whether the activation altered the selection.
func (c Change) Changed() bool {
	return c.Before != c.After
}

// Committed reports a finished selection: a single date, or a range whose
// end was set by this activation.
func (c Change) Committed() bool {
	if c.Rejected {
		return false
	}
	switch c.After.Kind {
	case Single:
		return true
	case RangeSelected:
		return c.EndSet
	default:
		return false
	}
}
