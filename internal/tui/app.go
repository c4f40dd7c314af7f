// Package tui is the gymdesk terminal front end: a member form with a
// single-date picker, a pass-period range picker and an inline sales filter
// calendar, all driven by bubbletea key and mouse events.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gymdesk/internal/calendar"
	"github.com/jask/gymdesk/internal/datecal"
	"github.com/jask/gymdesk/internal/filtercal"
	"github.com/jask/gymdesk/internal/logger"
	"github.com/jask/gymdesk/internal/overlay"
	"github.com/jask/gymdesk/internal/picker"
)

// Options configure the form.
type Options struct {
	WeekStart    time.Weekday
	Presets      []int
	ShowDuration bool
	Positioner   overlay.Positioner
	// Shortcuts nil uses filtercal.DefaultShortcuts.
	Shortcuts []filtercal.Shortcut
	Accent    string
	Clock     func() time.Time
	Logger    *slog.Logger
}

// Focus order.
const (
	focusMembership = iota
	focusPassStart
	focusPassEnd
	focusFilter
	focusCount
)

// Screen layout, in cells.
const (
	labelX        = 2
	fieldX        = 16
	fieldW        = 24
	passEndX      = fieldX + fieldW + 3
	passEndW      = 30
	rowMembership = 2
	rowPass       = 4
	rowFilterHead = 6
	rowFilter     = 7
	filterX       = 2
)

// popupPicker is what the form needs from an open picker.
type popupPicker interface {
	Grid() *calendar.Grid
	Overlay() *overlay.Overlay
	IsOpen() bool
	Activate(d datecal.Date)
	Close()
	Relayout(size overlay.Size)
}

// Model is the bubbletea model for the member form.
type Model struct {
	opts   Options
	st     styles
	keys   *KeyRegistry
	log    *slog.Logger
	reg    *overlay.Registry
	events *overlay.Dispatcher

	width  int
	height int

	membership *Field
	passStart  *Field
	passEnd    *Field
	single     *picker.Single
	pass       *picker.Range
	filter     *filtercal.Core
	filterView *filterSurface
	// pickerNames maps overlay ids to the field label shown when the
	// registry dismisses that picker's calendar.
	pickerNames map[string]string
	lastClose   overlay.CloseEvent

	focus     int
	cursor    datecal.Date
	popup     panel
	prompt    textinput.Model
	prompting bool
	status    string
	statusErr bool
}

func New(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	m := &Model{
		opts:       opts,
		st:         newStyles(opts.Accent),
		keys:       NewKeyRegistry(DefaultKeyBindings()),
		log:        log,
		reg:        overlay.NewRegistry(overlay.Size{Width: 80, Height: 24}, log),
		events:     &overlay.Dispatcher{},
		width:      80,
		height:     24,
		membership: newField("회원권 시작일", "날짜 선택", fieldW),
		passStart:  newField("이용권 기간", "시작일", fieldW),
		passEnd:    newField("", "종료일", passEndW),
	}
	m.reg.Listen(m.events)
	m.layout()

	positioner := opts.Positioner
	m.single = picker.NewSingle(m.reg, m.membership, picker.Options{
		WeekStart:  opts.WeekStart,
		Clock:      opts.Clock,
		Positioner: &positioner,
		Logger:     log,
		OnSelect: func(v picker.Value) {
			m.setStatus("회원권 시작일: " + v.Start)
		},
	})
	m.pass = picker.NewRange(m.reg, m.passStart, m.passEnd, picker.Options{
		Presets:      opts.Presets,
		ShowDuration: opts.ShowDuration,
		WeekStart:    opts.WeekStart,
		Clock:        opts.Clock,
		Positioner:   &positioner,
		Logger:       log,
		OnSelect: func(v picker.Value) {
			m.setStatus("이용권 기간: " + v.Start + " ~ " + v.End)
		},
	})
	m.filter = filtercal.New(filtercal.Options{
		Clock:     opts.Clock,
		WeekStart: opts.WeekStart,
		Shortcuts: opts.Shortcuts,
		Logger:    log,
		OnSelect: func(sel calendar.Selection) {
			m.setStatus("매출 필터: " + describeSelection(sel))
		},
	})
	m.cursor = m.filter.Grid().Today()
	m.pickerNames = map[string]string{
		m.single.Overlay().ID(): m.membership.label,
		m.pass.Overlay().ID():   m.passStart.label,
	}

	m.prompt = textinput.New()
	m.prompt.Prompt = "바로가기 › "
	m.prompt.Placeholder = "예: 지난 달"
	m.prompt.CharLimit = 20

	m.filterView = &filterSurface{m: m}
	m.filter.Mount(m.filterView)
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) layout() {
	m.membership.place(overlay.Rect{Top: rowMembership, Left: fieldX, Right: fieldX + fieldW, Bottom: rowMembership + 1})
	m.passStart.place(overlay.Rect{Top: rowPass, Left: fieldX, Right: fieldX + fieldW, Bottom: rowPass + 1})
	m.passEnd.place(overlay.Rect{Top: rowPass, Left: passEndX, Right: passEndX + passEndW, Bottom: rowPass + 1})
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
	m.log.Info("selection", "status", text)
}

// Scope names the key scope for the current state.
func (m *Model) Scope() string {
	switch {
	case m.prompting:
		return scopePrompt
	case m.editingField() != nil:
		return scopeEdit
	case m.openPicker() != nil:
		return scopePopup
	case m.focus == focusFilter:
		return scopeFilter
	default:
		return scopeForm
	}
}

func (m *Model) openPicker() popupPicker {
	switch {
	case m.single.IsOpen():
		return m.single
	case m.pass.IsOpen():
		return m.pass
	default:
		return nil
	}
}

func (m *Model) editingField() *Field {
	for _, f := range []*Field{m.membership, m.passStart, m.passEnd} {
		if f.Editing() {
			return f
		}
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.events.Resize(overlay.Size{Width: msg.Width, Height: msg.Height})
	case statusMsg:
		m.status, m.statusErr = msg.text, msg.isErr
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	default:
		if f := m.editingField(); f != nil {
			cmd = f.update(msg)
		} else if m.prompting {
			m.prompt, cmd = m.prompt.Update(msg)
		}
	}
	m.sync()
	return m, cmd
}

// sync reports calendars the registry dismissed, re-renders the open popup and filter panel and re-places the popup
// when its measured size changed.
func (m *Model) sync() {
	if ev := m.reg.LastClose(); ev.Seq != m.lastClose.Seq {
		m.lastClose = ev
		name := m.pickerNames[ev.ID]
		m.log.Debug("calendar dismissed", "picker", name, "overlay", ev.ID, "reason", ev.Reason)
		if ev.Reason != "reset" {
			m.status, m.statusErr = name+" 달력 닫힘", false
		}
	}
	if p := m.openPicker(); p != nil {
		m.popup = m.popupPanel(p)
		if p.Overlay().Size() != m.popup.size {
			p.Relayout(m.popup.size)
		}
	}
	m.filterView.Draw(m.filter)
}

// ---------------------------------------------------------------------------
// Keyboard
// ---------------------------------------------------------------------------

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	scope := m.Scope()
	action := m.keys.Action(msg, scope)
	if action == actQuit {
		m.reg.Reset()
		return tea.Quit
	}
	switch scope {
	case scopePrompt:
		return m.promptKey(msg, action)
	case scopeEdit:
		return m.editKey(msg, action)
	case scopePopup:
		return m.popupKey(msg, action)
	case scopeFilter:
		return m.filterKey(msg, action)
	default:
		return m.formKey(action)
	}
}

func (m *Model) formKey(action string) tea.Cmd {
	switch action {
	case actNextField:
		m.moveFocus(1)
	case actPrevField:
		m.moveFocus(-1)
	case actOpen:
		m.openFocused()
	case actEdit:
		return m.editFocused()
	case actClear:
		switch m.focus {
		case focusMembership:
			m.single.Clear()
		case focusPassStart, focusPassEnd:
			m.pass.Clear()
		}
	}
	return nil
}

func (m *Model) moveFocus(delta int) {
	m.focus = (m.focus + delta + focusCount) % focusCount
	if m.focus == focusFilter {
		m.cursor = cursorInView(m.filter.Grid().View(), m.cursor, m.filter.Grid().Today())
	}
}

func (m *Model) openFocused() {
	switch m.focus {
	case focusMembership:
		m.single.Open()
		d, ok := m.single.Grid().Selection().Date()
		if !ok {
			d = m.single.Grid().Today()
		}
		m.cursor = d
	case focusPassStart, focusPassEnd:
		which := calendar.PointerStart
		if m.focus == focusPassEnd {
			which = calendar.PointerEnd
		}
		m.pass.Open(which)
		sel := m.pass.Grid().Selection()
		own, other := sel.Start, sel.End
		if which == calendar.PointerEnd {
			own, other = other, own
		}
		m.cursor = firstDate(own, other, m.pass.Grid().Today())
	}
}

func (m *Model) editFocused() tea.Cmd {
	switch m.focus {
	case focusMembership:
		return m.membership.startEdit(m.single.Value())
	case focusPassStart:
		return m.passStart.startEdit(m.pass.Value().Start)
	case focusPassEnd:
		return m.passEnd.startEdit(m.pass.Value().End)
	}
	return nil
}

func (m *Model) editKey(msg tea.KeyMsg, action string) tea.Cmd {
	f := m.editingField()
	switch action {
	case actCancel:
		f.stopEdit()
		return nil
	case actConfirm:
		typed := f.stopEdit()
		var err error
		switch f {
		case m.membership:
			if typed == "" {
				m.single.Clear()
				return nil
			}
			err = m.single.SetDate(typed)
		case m.passStart:
			if typed == "" {
				m.pass.Clear()
				return nil
			}
			err = m.pass.SetRange(typed, m.pass.Value().End)
		case m.passEnd:
			err = m.pass.SetRange(m.pass.Value().Start, typed)
		}
		if err != nil {
			return errorCmd(err)
		}
		return nil
	}
	return f.update(msg)
}

func (m *Model) popupKey(msg tea.KeyMsg, action string) tea.Cmd {
	p := m.openPicker()
	g := p.Grid()
	switch action {
	case actClose:
		p.Close()
	case actActivate:
		p.Activate(m.cursor)
	case actLeft:
		m.moveGridCursor(g, -1)
	case actRight:
		m.moveGridCursor(g, 1)
	case actUp:
		m.moveGridCursor(g, -7)
	case actDown:
		m.moveGridCursor(g, 7)
	case actPrevMonth:
		g.NavigateMonth(-1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case actNextMonth:
		g.NavigateMonth(1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case actPrevYear:
		g.NavigateYear(-1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case actNextYear:
		g.NavigateYear(1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case actToday:
		g.GoToday()
		m.cursor = g.Today()
	case actPresetIndex:
		if p != popupPicker(m.pass) || !m.pass.PresetsVisible() {
			return statusCmd("시작일을 먼저 선택하세요")
		}
		presets := m.pass.Presets()
		if i := digitIndex(msg); i >= 0 && i < len(presets) {
			m.pass.ApplyPreset(presets[i])
		}
	}
	return nil
}

func (m *Model) moveGridCursor(g *calendar.Grid, days int) {
	m.cursor = m.cursor.AddDays(days)
	if !g.View().Contains(m.cursor) {
		g.SetView(m.cursor.ViewMonth())
	}
	g.SetHover(m.cursor)
}

func (m *Model) filterKey(msg tea.KeyMsg, action string) tea.Cmd {
	g := m.filter.Grid()
	switch action {
	case actNextField:
		m.moveFocus(1)
	case actPrevField:
		m.moveFocus(-1)
	case actActivate:
		m.filter.Activate(m.cursor)
	case actClear:
		m.filter.ClearRange()
		m.cursor = g.Today()
	case actLeft:
		m.moveFilterCursor(-1)
	case actRight:
		m.moveFilterCursor(1)
	case actUp:
		m.moveFilterCursor(-7)
	case actDown:
		m.moveFilterCursor(7)
	case actPrevMonth:
		m.filter.NavigateMonth(-1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case actNextMonth:
		m.filter.NavigateMonth(1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case actPrevYear:
		m.filter.NavigateYear(-1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case actNextYear:
		m.filter.NavigateYear(1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case actToday:
		m.filter.GoToday()
		m.cursor = g.Today()
	case actPresetIndex:
		shortcuts := m.filter.Shortcuts()
		if i := digitIndex(msg); i >= 0 && i < len(shortcuts) {
			return m.applyShortcut(shortcuts[i].Label)
		}
	case actShortcut:
		m.prompting = true
		m.prompt.SetValue("")
		return m.prompt.Focus()
	}
	return nil
}

func (m *Model) moveFilterCursor(days int) {
	m.cursor = m.cursor.AddDays(days)
	if delta := monthsBetween(m.filter.Grid().View(), m.cursor.ViewMonth()); delta != 0 {
		m.filter.NavigateMonth(delta)
	}
	m.filter.SetHover(m.cursor)
}

func (m *Model) applyShortcut(label string) tea.Cmd {
	s, err := m.filter.ApplyShortcut(label)
	if err != nil {
		return errorCmd(err)
	}
	if start, _ := m.filter.Range(); !start.IsZero() {
		m.cursor = start
	}
	m.log.Debug("shortcut", "label", s.Label)
	return nil
}

func (m *Model) promptKey(msg tea.KeyMsg, action string) tea.Cmd {
	switch action {
	case actCancel:
		m.prompting = false
		m.prompt.Blur()
		return nil
	case actConfirm:
		m.prompting = false
		m.prompt.Blur()
		return m.applyShortcut(m.prompt.Value())
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

// ---------------------------------------------------------------------------
// Mouse
// ---------------------------------------------------------------------------

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	pt := overlay.Point{X: msg.X, Y: msg.Y}
	switch {
	case msg.Action == tea.MouseActionPress && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
		m.events.Scroll()
		if m.filterView.contains(pt) {
			delta := 1
			if msg.Button == tea.MouseButtonWheelUp {
				delta = -1
			}
			m.filter.NavigateMonth(delta)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.events.PointerDown(pt)
		return m.click(pt)
	case msg.Action == tea.MouseActionMotion:
		m.hover(pt)
	}
	return nil
}

func (m *Model) click(pt overlay.Point) tea.Cmd {
	if p := m.openPicker(); p != nil {
		if h, ok := m.popup.hitAt(p.Overlay().Position(), pt); ok {
			m.popupHit(p, h)
			return nil
		}
	}
	fields := []struct {
		f     *Field
		focus int
	}{
		{m.membership, focusMembership},
		{m.passStart, focusPassStart},
		{m.passEnd, focusPassEnd},
	}
	for _, fc := range fields {
		if fc.f.Bounds().Contains(pt) {
			m.focus = fc.focus
			m.openFocused()
			return nil
		}
	}
	if h, ok := m.filterView.hitAt(pt); ok {
		m.focus = focusFilter
		return m.filterHit(h)
	}
	return nil
}

func (m *Model) popupHit(p popupPicker, h hit) {
	g := p.Grid()
	switch h.kind {
	case hitDay:
		m.cursor = h.date
		p.Activate(h.date)
	case hitPrevMonth:
		g.NavigateMonth(-1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case hitNextMonth:
		g.NavigateMonth(1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case hitPreset:
		m.pass.ApplyPreset(h.days)
	}
}

func (m *Model) filterHit(h hit) tea.Cmd {
	g := m.filter.Grid()
	switch h.kind {
	case hitDay:
		m.cursor = h.date
		m.filter.Activate(h.date)
	case hitPrevMonth:
		m.filter.NavigateMonth(-1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case hitNextMonth:
		m.filter.NavigateMonth(1)
		m.cursor = cursorInView(g.View(), m.cursor, g.Today())
	case hitShortcut:
		return m.applyShortcut(h.label)
	}
	return nil
}

func (m *Model) hover(pt overlay.Point) {
	if p := m.openPicker(); p != nil {
		if h, ok := m.popup.hitAt(p.Overlay().Position(), pt); ok && h.kind == hitDay {
			p.Grid().SetHover(h.date)
		} else {
			p.Grid().ClearHover()
		}
		return
	}
	if h, ok := m.filterView.hitAt(pt); ok && h.kind == hitDay {
		m.filter.SetHover(h.date)
		return
	}
	if _, hovering := m.filter.Grid().Hover(); hovering {
		m.filter.ClearHover()
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (m *Model) popupPanel(p popupPicker) panel {
	cp := calendarPanel{grid: p.Grid(), cursor: m.cursor, focused: true}
	if p == popupPicker(m.pass) {
		label := "▸ 시작일 선택"
		if m.pass.Pointer() == calendar.PointerEnd {
			label = "▸ 종료일 선택"
		}
		note := m.st.label.Render(label)
		if n, ok := m.pass.Duration(); ok {
			note += "  " + m.st.duration.Render("기간 "+datecal.FormatDuration(n))
		}
		cp.notes = append(cp.notes, note)
		if m.pass.PresetsVisible() {
			for _, days := range m.pass.Presets() {
				cp.buttons = append(cp.buttons, button{text: picker.PresetLabel(days), kind: hitPreset, days: days})
			}
		}
	}
	return cp.render(m.st)
}

func describeSelection(sel calendar.Selection) string {
	switch sel.Kind {
	case calendar.RangeSelecting:
		return datecal.FormatLocalDate(sel.Start) + " ~"
	case calendar.RangeSelected:
		n, _ := sel.Duration()
		return datecal.FormatLocalDate(sel.Start) + " ~ " + datecal.FormatLocalDate(sel.End) + " (" + datecal.FormatDuration(n) + ")"
	default:
		return "전체 기간"
	}
}

func firstDate(candidates ...datecal.Date) datecal.Date {
	for _, d := range candidates {
		if !d.IsZero() {
			return d
		}
	}
	return datecal.Date{}
}

// cursorInView keeps the cursor's day of month inside view, preferring
// today when today is shown.
func cursorInView(view datecal.ViewMonth, cursor, today datecal.Date) datecal.Date {
	if view.Contains(cursor) {
		return cursor
	}
	if view.Contains(today) {
		return today
	}
	day := cursor.Day
	if day < 1 {
		day = 1
	}
	return datecal.New(view.Year, view.Month, min(day, view.Days()))
}

func monthsBetween(from, to datecal.ViewMonth) int {
	return (to.Year-from.Year)*12 + int(to.Month) - int(from.Month)
}

// digitIndex maps "1".."9" to 0..8 and "0" to 9; other keys give -1.
func digitIndex(msg tea.KeyMsg) int {
	s := strings.TrimSpace(msg.String())
	if s == "0" {
		return 9
	}
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}
