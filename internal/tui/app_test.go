package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/gymdesk/internal/calendar"
	"github.com/jask/gymdesk/internal/datecal"
	"github.com/jask/gymdesk/internal/overlay"
)

func testClock() time.Time {
	return time.Date(2025, time.January, 15, 10, 0, 0, 0, time.Local)
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(Options{
		ShowDuration: true,
		Positioner:   overlay.Positioner{Gap: 0, Edge: 1},
		Clock:        testClock,
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func day(t *testing.T, s string) datecal.Date {
	t.Helper()
	d, err := datecal.ParseLocalDate(s)
	require.NoError(t, err)
	return d
}

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		_, last = m.Update(k)
	}
	return last
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func click(m *Model, pt overlay.Point) {
	m.Update(tea.MouseMsg{X: pt.X, Y: pt.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// popupDay returns the screen cell of d in the open popup.
func popupDay(t *testing.T, m *Model, d datecal.Date) overlay.Point {
	t.Helper()
	p := m.openPicker()
	require.NotNil(t, p)
	origin := p.Overlay().Position()
	for _, h := range m.popup.hits {
		if h.kind == hitDay && h.date.Equal(d) {
			return overlay.Point{X: origin.X + h.rect.Left, Y: origin.Y + h.rect.Top}
		}
	}
	t.Fatalf("day %s not in popup", d)
	return overlay.Point{}
}

func TestSinglePickerByKeyboard(t *testing.T) {
	m := newTestModel(t)

	press(m, keyEnter)
	require.True(t, m.single.IsOpen())
	assert.Equal(t, scopePopup, m.Scope())
	assert.Equal(t, day(t, "2025-01-15"), m.cursor)

	press(m, keyRight, keyRight, keyEnter)
	assert.False(t, m.single.IsOpen())
	assert.Equal(t, "25년 01월 17일 (금)", m.membership.Text())
	assert.Contains(t, m.status, "2025-01-17")
	assert.Equal(t, scopeForm, m.Scope())
}

func TestPopupPlacedUnderField(t *testing.T) {
	m := newTestModel(t)
	press(m, keyEnter)

	pos := m.single.Overlay().Position()
	assert.Equal(t, overlay.Point{X: fieldX, Y: rowMembership + 1}, pos)
	assert.Equal(t, m.popup.size, m.single.Overlay().Size(), "popup is re-measured after opening")

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "2025년 1월")
	assert.Len(t, strings.Split(view, "\n"), 30)
}

func TestRangePickerPresetByKeyboard(t *testing.T) {
	m := newTestModel(t)
	press(m, keyTab, keyEnter)
	require.True(t, m.pass.IsOpen())
	assert.Equal(t, calendar.PointerStart, m.pass.Pointer())

	press(m, keyEnter)
	assert.True(t, m.pass.IsOpen())
	assert.True(t, m.pass.PresetsVisible())
	assert.Equal(t, "25년 01월 15일 (수)", m.passStart.Text())

	press(m, runes("1"))
	assert.False(t, m.pass.IsOpen())
	assert.Equal(t, "25년 01월 21일 (화), 7일", m.passEnd.Text())
	assert.Contains(t, m.status, "2025-01-15 ~ 2025-01-21")
}

func TestRangePickerByMouse(t *testing.T) {
	m := newTestModel(t)
	click(m, overlay.Point{X: fieldX + 2, Y: rowPass})
	require.True(t, m.pass.IsOpen())
	assert.Equal(t, focusPassStart, m.focus)

	click(m, popupDay(t, m, day(t, "2025-01-03")))
	require.True(t, m.pass.IsOpen())
	click(m, popupDay(t, m, day(t, "2025-01-12")))
	assert.False(t, m.pass.IsOpen())
	assert.Equal(t, "25년 01월 12일 (일), 10일", m.passEnd.Text())
}

func TestOpeningSecondPopupClosesFirst(t *testing.T) {
	m := newTestModel(t)
	press(m, keyEnter)
	require.True(t, m.single.IsOpen())

	click(m, overlay.Point{X: passEndX + 20, Y: rowPass})
	assert.False(t, m.single.IsOpen())
	assert.True(t, m.pass.IsOpen())
	assert.Equal(t, calendar.PointerEnd, m.pass.Pointer())
	assert.Equal(t, passEndX, m.pass.Overlay().Position().X)
	assert.Equal(t, m.single.Overlay().ID(), m.reg.LastClose().ID)
	assert.Equal(t, "회원권 시작일 달력 닫힘", m.status)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, "이용권 기간 달력 닫힘", m.status)
}

func TestOutsideClickResizeAndScrollClose(t *testing.T) {
	m := newTestModel(t)

	press(m, keyEnter)
	click(m, overlay.Point{X: 90, Y: 1})
	assert.False(t, m.single.IsOpen())
	assert.Equal(t, "", m.membership.Text())
	assert.Equal(t, "회원권 시작일 달력 닫힘", m.status)

	press(m, keyEnter)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.False(t, m.single.IsOpen())
	assert.Equal(t, overlay.Size{Width: 120, Height: 40}, m.reg.Viewport())

	press(m, keyEnter)
	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.False(t, m.single.IsOpen())
}

func TestEscClosesPopup(t *testing.T) {
	m := newTestModel(t)
	press(m, keyEnter, keyEsc)
	assert.False(t, m.single.IsOpen())
	assert.Nil(t, m.reg.Active())
}

func TestFilterCalendarByKeyboard(t *testing.T) {
	m := newTestModel(t)
	press(m, keyTab, keyTab, keyTab)
	require.Equal(t, scopeFilter, m.Scope())

	press(m, keyEnter, keyRight, keyRight, keyRight)
	hover, ok := m.filter.Grid().Hover()
	require.True(t, ok)
	assert.Equal(t, day(t, "2025-01-18"), hover)

	press(m, keyEnter)
	start, end := m.filter.Range()
	assert.Equal(t, day(t, "2025-01-15"), start)
	assert.Equal(t, day(t, "2025-01-18"), end)
	assert.Contains(t, m.status, "4일")
}

func TestFilterShortcutPrompt(t *testing.T) {
	m := newTestModel(t)
	press(m, keyTab, keyTab, keyTab, runes("/"))
	require.Equal(t, scopePrompt, m.Scope())

	press(m, runes("지난달"), keyEnter)
	assert.Equal(t, scopeFilter, m.Scope())
	start, end := m.filter.Range()
	assert.Equal(t, day(t, "2024-12-01"), start)
	assert.Equal(t, day(t, "2024-12-31"), end)
	assert.Equal(t, datecal.ViewMonth{Year: 2024, Month: time.December}, m.filter.Grid().View())
}

func TestFilterShortcutDigitAndClick(t *testing.T) {
	m := newTestModel(t)
	press(m, keyTab, keyTab, keyTab, runes("1"))
	start, end := m.filter.Range()
	assert.Equal(t, day(t, "2025-01-15"), start)
	assert.Equal(t, day(t, "2025-01-15"), end)

	var target hit
	for _, h := range m.filterView.panel.hits {
		if h.kind == hitShortcut && h.label == "최근 7일" {
			target = h
		}
	}
	require.Equal(t, hitShortcut, target.kind)
	origin := m.filterView.origin
	click(m, overlay.Point{X: origin.X + target.rect.Left, Y: origin.Y + target.rect.Top})
	start, end = m.filter.Range()
	assert.Equal(t, day(t, "2025-01-09"), start)
	assert.Equal(t, day(t, "2025-01-15"), end)
}

func TestTypedDateEntry(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("e"))
	require.Equal(t, scopeEdit, m.Scope())

	press(m, runes("2025-03-02"), keyEnter)
	assert.Equal(t, scopeForm, m.Scope())
	assert.Equal(t, "25년 03월 02일 (일)", m.membership.Text())
	assert.Equal(t, "2025-03-02", m.single.Value())
}

func TestTypedDateEntryRejectsInvalid(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("e"), runes("2025-02-31"))
	cmd := press(m, keyEnter)
	require.NotNil(t, cmd)

	m.Update(cmd())
	assert.True(t, m.statusErr)
	assert.Equal(t, "", m.single.Value())
	assert.Equal(t, "", m.membership.Text())
}

func TestQuitClosesPopups(t *testing.T) {
	m := newTestModel(t)
	press(m, keyEnter)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.single.IsOpen())
}
