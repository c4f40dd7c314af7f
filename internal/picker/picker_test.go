package picker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/gymdesk/internal/calendar"
	"github.com/jask/gymdesk/internal/datecal"
	"github.com/jask/gymdesk/internal/overlay"
)

type fakeInput struct {
	rect overlay.Rect
	text string
	sets int
}

func (f *fakeInput) Bounds() overlay.Rect { return f.rect }
func (f *fakeInput) Scroll() overlay.Point { return overlay.Point{} }
func (f *fakeInput) SetText(text string) {
	f.text = text
	f.sets++
}

func testClock() time.Time {
	return time.Date(2025, time.January, 15, 9, 0, 0, 0, time.Local)
}

func mustDay(t *testing.T, s string) datecal.Date {
	t.Helper()
	d, err := datecal.ParseLocalDate(s)
	require.NoError(t, err)
	return d
}

func newRegistry() *overlay.Registry {
	return overlay.NewRegistry(overlay.Size{Width: 1000, Height: 800}, nil)
}

func newRangePicker(t *testing.T, opts Options) (*Range, *fakeInput, *fakeInput, *overlay.Registry) {
	t.Helper()
	reg := newRegistry()
	start := &fakeInput{rect: overlay.Rect{Top: 100, Left: 40, Right: 240, Bottom: 130}}
	end := &fakeInput{rect: overlay.Rect{Top: 100, Left: 260, Right: 460, Bottom: 130}}
	if opts.Clock == nil {
		opts.Clock = testClock
	}
	return NewRange(reg, start, end, opts), start, end, reg
}

func TestSingleCommitFormatsAndCloses(t *testing.T) {
	reg := newRegistry()
	in := &fakeInput{rect: overlay.Rect{Top: 10, Left: 10, Right: 200, Bottom: 40}}
	var got []Value
	p := NewSingle(reg, in, Options{Clock: testClock, OnSelect: func(v Value) { got = append(got, v) }})

	p.Open()
	require.True(t, p.IsOpen())
	assert.Same(t, p.Overlay(), reg.Active())

	p.Activate(mustDay(t, "2025-01-10"))
	assert.Equal(t, "25년 01월 10일 (금)", in.text)
	assert.False(t, p.IsOpen())
	assert.Nil(t, reg.Active())
	assert.Equal(t, "2025-01-10", p.Value())
	assert.Equal(t, []Value{{Start: "2025-01-10"}}, got)
}

func TestSingleCloseTwiceMatchesOnce(t *testing.T) {
	reg := newRegistry()
	p := NewSingle(reg, &fakeInput{}, Options{Clock: testClock})
	p.Open()
	p.Close()
	open, active := p.IsOpen(), reg.Active()
	p.Close()
	assert.Equal(t, open, p.IsOpen())
	assert.Equal(t, active, reg.Active())
	assert.False(t, p.IsOpen())
}

func TestSingleSetDateDoesNotOpenOrClose(t *testing.T) {
	reg := newRegistry()
	in := &fakeInput{}
	p := NewSingle(reg, in, Options{Clock: testClock})

	require.NoError(t, p.SetDate("2025-03-02"))
	assert.False(t, p.IsOpen())
	assert.Equal(t, "25년 03월 02일 (일)", in.text)
	assert.Equal(t, datecal.ViewMonth{Year: 2025, Month: time.March}, p.Grid().View())

	p.Open()
	require.NoError(t, p.SetDate("2025-03-05"))
	assert.True(t, p.IsOpen(), "SetDate must not force-close")
}

func TestSingleSetDateRejectsInvalid(t *testing.T) {
	in := &fakeInput{}
	p := NewSingle(newRegistry(), in, Options{Clock: testClock, DefaultStart: "2025-01-02"})
	before := in.sets

	err := p.SetDate("2025-02-31")
	require.ErrorIs(t, err, datecal.ErrInvalidDate)
	assert.Equal(t, "2025-01-02", p.Value())
	assert.Equal(t, before, in.sets)
}

func TestOpeningSecondPickerClosesFirst(t *testing.T) {
	reg := newRegistry()
	a := NewSingle(reg, &fakeInput{}, Options{Clock: testClock})
	b := NewRange(reg, &fakeInput{}, &fakeInput{}, Options{Clock: testClock})

	a.Open()
	b.Open(calendar.PointerStart)
	assert.False(t, a.IsOpen())
	assert.True(t, b.IsOpen())
	assert.Same(t, b.Overlay(), reg.Active())
}

func TestRangeClickFlowWithDuration(t *testing.T) {
	var got []Value
	p, start, end, reg := newRangePicker(t, Options{ShowDuration: true, OnSelect: func(v Value) { got = append(got, v) }})

	p.Open(calendar.PointerStart)
	p.Activate(mustDay(t, "2025-01-01"))
	assert.Equal(t, "25년 01월 01일 (수)", start.text)
	assert.Equal(t, "", end.text)
	assert.Equal(t, calendar.PointerEnd, p.Pointer())
	assert.True(t, p.IsOpen(), "picking the start keeps the calendar open")
	assert.True(t, p.PresetsVisible())

	p.Activate(mustDay(t, "2025-01-10"))
	assert.Equal(t, "25년 01월 10일 (금), 10일", end.text)
	assert.False(t, p.IsOpen())
	assert.Nil(t, reg.Active())
	assert.False(t, p.PresetsVisible(), "presets hide once the range is committed")
	assert.Equal(t, []Value{{Start: "2025-01-01", End: "2025-01-10"}}, got)
}

func TestRangeStartAfterEndBlanksEnd(t *testing.T) {
	p, start, end, _ := newRangePicker(t, Options{ShowDuration: true})
	require.NoError(t, p.SetRange("2025-01-01", "2025-01-10"))
	require.NotEmpty(t, end.text)

	p.Open(calendar.PointerStart)
	p.Activate(mustDay(t, "2025-01-20"))
	assert.Equal(t, "25년 01월 20일 (월)", start.text)
	assert.Equal(t, "", end.text)
	assert.Equal(t, Value{Start: "2025-01-20"}, p.Value())
}

func TestRangeEndBeforeStartSwaps(t *testing.T) {
	p, start, end, _ := newRangePicker(t, Options{})
	p.Open(calendar.PointerStart)
	p.Activate(mustDay(t, "2025-01-10"))
	p.Activate(mustDay(t, "2025-01-04"))

	assert.Equal(t, "25년 01월 04일 (토)", start.text)
	assert.Equal(t, "", end.text)
	assert.Equal(t, calendar.PointerEnd, p.Pointer())
	assert.True(t, p.IsOpen())
}

func TestRangePresets(t *testing.T) {
	p, _, end, _ := newRangePicker(t, Options{ShowDuration: true})
	p.Open(calendar.PointerStart)
	p.Activate(mustDay(t, "2025-01-01"))
	require.True(t, p.PresetsVisible())

	require.True(t, p.ApplyPreset(7))
	assert.Equal(t, Value{Start: "2025-01-01", End: "2025-01-07"}, p.Value())
	assert.Equal(t, "25년 01월 07일 (화), 7일", end.text)

	require.True(t, p.ApplyPreset(7))
	assert.Equal(t, Value{Start: "2025-01-01", End: "2025-01-14"}, p.Value())
	n, ok := p.Duration()
	assert.True(t, ok)
	assert.Equal(t, 14, n)
}

func TestRangePresetMovesViewToNewEnd(t *testing.T) {
	p, _, _, _ := newRangePicker(t, Options{})
	p.Open(calendar.PointerStart)
	p.Activate(mustDay(t, "2025-01-20"))
	require.True(t, p.ApplyPreset(30))
	assert.Equal(t, "2025-02-18", p.Value().End)
	assert.Equal(t, datecal.ViewMonth{Year: 2025, Month: time.February}, p.Grid().View())
}

func TestRangePresetNeedsStart(t *testing.T) {
	p, _, _, _ := newRangePicker(t, Options{})
	assert.False(t, p.ApplyPreset(7))
	assert.False(t, p.PresetsVisible())
}

func TestRangeSetRangeRoundTrip(t *testing.T) {
	p, _, end, _ := newRangePicker(t, Options{ShowDuration: true})
	p.grid.SetPointer(calendar.PointerEnd)

	require.NoError(t, p.SetRange("2025-02-01", "2025-02-20"))
	assert.Equal(t, Value{Start: "2025-02-01", End: "2025-02-20"}, p.Value())
	assert.Equal(t, "25년 02월 20일 (목), 20일", end.text)
	assert.Equal(t, calendar.PointerEnd, p.Pointer(), "SetRange leaves the pointer alone")
}

func TestRangeSetRangeRejectsInvalid(t *testing.T) {
	p, _, _, _ := newRangePicker(t, Options{DefaultStart: "2025-01-01", DefaultEnd: "2025-01-03"})
	want := p.Value()

	assert.ErrorIs(t, p.SetRange("2025-01-05", "2025-01-02"), ErrInvalidRange)
	assert.ErrorIs(t, p.SetRange("nope", "2025-01-02"), datecal.ErrInvalidDate)
	assert.ErrorIs(t, p.SetRange("2025-01-01", "2025-1-2"), datecal.ErrInvalidDate)
	assert.Equal(t, want, p.Value())
}

func TestRangeOpenCentersOnClickedSlot(t *testing.T) {
	p, _, end, _ := newRangePicker(t, Options{})
	require.NoError(t, p.SetRange("2025-03-10", "2025-05-02"))

	p.Open(calendar.PointerStart)
	assert.Equal(t, datecal.ViewMonth{Year: 2025, Month: time.March}, p.Grid().View())
	p.Open(calendar.PointerEnd)
	assert.Equal(t, datecal.ViewMonth{Year: 2025, Month: time.May}, p.Grid().View())
	assert.Equal(t, overlay.Anchor(end), p.Overlay().Anchor())

	p.Clear()
	p.Open(calendar.PointerEnd)
	assert.Equal(t, datecal.ViewMonth{Year: 2025, Month: time.January}, p.Grid().View())
}

func TestRangeCloseKeepsCommittedStart(t *testing.T) {
	p, _, _, _ := newRangePicker(t, Options{})
	p.Open(calendar.PointerStart)
	p.Activate(mustDay(t, "2025-01-05"))
	p.Grid().SetHover(mustDay(t, "2025-01-09"))

	p.Close()
	_, hovering := p.Grid().Hover()
	assert.False(t, hovering)
	assert.Equal(t, Value{Start: "2025-01-05"}, p.Value())
}

func TestClearBlanksInputs(t *testing.T) {
	reg := newRegistry()
	in := &fakeInput{}
	single := NewSingle(reg, in, Options{Clock: testClock})
	require.NoError(t, single.SetDate("2025-01-10"))
	single.Clear()
	assert.Equal(t, "", single.Value())
	assert.Equal(t, "", in.text)

	p, start, end, _ := newRangePicker(t, Options{ShowDuration: true})
	require.NoError(t, p.SetRange("2025-01-03", "2025-01-12"))
	p.Clear()
	assert.True(t, p.Value().IsZero())
	assert.Equal(t, "", start.text)
	assert.Equal(t, "", end.text)
	assert.Equal(t, calendar.PointerStart, p.Pointer())
}

func TestSingleDisabledActivationIsNoop(t *testing.T) {
	reg := newRegistry()
	in := &fakeInput{rect: overlay.Rect{Top: 10, Left: 10, Right: 200, Bottom: 40}}
	notified := 0
	p := NewSingle(reg, in, Options{
		Clock:        testClock,
		Max:          mustDay(t, "2025-01-31"),
		DefaultStart: "2025-01-10",
		OnSelect:     func(Value) { notified++ },
	})
	require.Equal(t, "2025-01-10", p.Value())
	sets := in.sets

	p.Open()
	p.Activate(mustDay(t, "2025-02-05"))
	assert.True(t, p.IsOpen())
	assert.Same(t, p.Overlay(), reg.Active())
	assert.Equal(t, 0, notified)
	assert.Equal(t, sets, in.sets)
	assert.Equal(t, "2025-01-10", p.Value())
}

func TestProgrammaticSetsRespectBounds(t *testing.T) {
	bounds := Options{Min: mustDay(t, "2025-01-05"), Max: mustDay(t, "2025-01-31")}

	single := NewSingle(newRegistry(), &fakeInput{}, Options{Clock: testClock, Min: bounds.Min, Max: bounds.Max})
	assert.ErrorIs(t, single.SetDate("2025-02-01"), calendar.ErrOutOfBounds)
	assert.Equal(t, "", single.Value())
	require.NoError(t, single.SetDate("2025-01-31"))

	p, start, end, _ := newRangePicker(t, bounds)
	assert.ErrorIs(t, p.SetRange("2025-01-04", "2025-01-10"), calendar.ErrOutOfBounds)
	assert.ErrorIs(t, p.SetRange("2025-01-10", "2025-02-10"), calendar.ErrOutOfBounds)
	assert.True(t, p.Value().IsZero())
	assert.Equal(t, "", start.text)
	assert.Equal(t, "", end.text)
}
