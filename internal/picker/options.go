// Package picker binds calendar grids to text inputs and overlays: a
// single-date picker and a two-input range picker with duration display and
// day-count presets.
package picker

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/jask/gymdesk/internal/datecal"
	"github.com/jask/gymdesk/internal/overlay"
)

// ErrInvalidRange is returned when a range's end falls before its start.
var ErrInvalidRange = errors.New("end before start")

// DefaultPresets are the day-count shortcuts offered while picking an end.
var DefaultPresets = []int{7, 10, 30, 365}

// Input is a text field a picker writes into. Its geometry anchors the
// overlay.
type Input interface {
	overlay.Anchor
	SetText(text string)
}

// Value is the canonical YYYY-MM-DD form of a picker's selection. Single
// pickers only fill Start.
type Value struct {
	Start string
	End   string
}

func (v Value) IsZero() bool {
	return v.Start == "" && v.End == ""
}

type Options struct {
	// Presets are day deltas for range pickers; nil uses DefaultPresets.
	Presets []int
	// ShowDuration appends ", N일" to a committed range end.
	ShowDuration bool
	// DefaultStart and DefaultEnd are applied at construction when valid.
	DefaultStart string
	DefaultEnd   string
	Min          datecal.Date
	Max          datecal.Date
	WeekStart    time.Weekday
	Clock        func() time.Time
	// Positioner defaults to overlay.DefaultPositioner.
	Positioner *overlay.Positioner
	OnSelect   func(Value)
	Logger     *slog.Logger
}

func (o Options) positioner() overlay.Positioner {
	if o.Positioner == nil {
		return overlay.DefaultPositioner
	}
	return *o.Positioner
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// PresetLabel renders a preset button label such as "+7일".
func PresetLabel(days int) string {
	return "+" + strconv.Itoa(days) + "일"
}
