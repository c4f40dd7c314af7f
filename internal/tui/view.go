package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/gymdesk/internal/filtercal"
	"github.com/jask/gymdesk/internal/overlay"
)

// filterSurface is where the filter calendar draws itself: the month grid
// with a numbered shortcut list to its right.
type filterSurface struct {
	m      *Model
	origin overlay.Point
	panel  panel
}

func (s *filterSurface) Draw(c *filtercal.Core) {
	m := s.m
	s.origin = overlay.Point{X: filterX, Y: rowFilter}
	cal := calendarPanel{
		grid:    c.Grid(),
		cursor:  m.cursor,
		focused: m.focus == focusFilter && m.openPicker() == nil,
		notes:   []string{m.st.label.Render(describeSelection(c.Selection()))},
	}.render(m.st)

	listX := cal.size.Width + 2
	lines := []string{m.st.label.Render("바로가기")}
	hits := append([]hit(nil), cal.hits...)
	for i, sc := range c.Shortcuts() {
		key := strconv.Itoa((i + 1) % 10)
		if i >= 10 {
			key = " "
		}
		lines = append(lines, m.st.key.UnsetBackground().Render(key)+" "+m.st.button.Render(" "+sc.Label+" "))
		hits = append(hits, hit{
			rect:  overlay.Rect{Top: i + 1, Left: listX + 2, Right: listX + 2 + lipgloss.Width(sc.Label) + 2, Bottom: i + 2},
			kind:  hitShortcut,
			label: sc.Label,
		})
	}
	list := strings.Join(lines, "\n")
	view := lipgloss.JoinHorizontal(lipgloss.Top, cal.view, "  ", list)
	s.panel = panel{
		view: view,
		hits: hits,
		size: overlay.Size{Width: lipgloss.Width(view), Height: lipgloss.Height(view)},
	}
}

func (s *filterSurface) hitAt(pt overlay.Point) (hit, bool) {
	return s.panel.hitAt(s.origin, pt)
}

func (s *filterSurface) contains(pt overlay.Point) bool {
	r := overlay.Rect{
		Top:    s.origin.Y,
		Left:   s.origin.X,
		Right:  s.origin.X + s.panel.size.Width,
		Bottom: s.origin.Y + s.panel.size.Height,
	}
	return r.Contains(pt)
}

func (m *Model) View() string {
	w, h := max(m.width, 40), max(m.height, 10)
	scr := newScreen(w, h)

	scr.fill(0, renderBar(m.st.header, w, " gymdesk · 회원 관리"))
	scr.stamp(labelX, rowMembership, m.st.label.Render(m.membership.label))
	scr.stamp(fieldX, rowMembership, m.membership.view(m.st, m.focus == focusMembership))
	scr.stamp(labelX, rowPass, m.st.label.Render(m.passStart.label))
	scr.stamp(fieldX, rowPass, m.passStart.view(m.st, m.focus == focusPassStart))
	scr.stamp(fieldX+fieldW+1, rowPass, m.st.label.Render("~"))
	scr.stamp(passEndX, rowPass, m.passEnd.view(m.st, m.focus == focusPassEnd))
	scr.stamp(labelX, rowFilterHead, m.st.label.Render("매출 필터"))

	scr.stamp(filterX, rowFilter, m.filterView.panel.view)
	if m.prompting {
		scr.stamp(filterX, rowFilter+m.filterView.panel.size.Height, m.prompt.View())
	}
	if p := m.openPicker(); p != nil {
		pos := p.Overlay().Position()
		scr.stamp(pos.X, pos.Y, m.popup.view)
	}

	// Status and footer paint last so nothing overlaps them.
	scr.fill(h-2, m.renderStatus(w))
	scr.fill(h-1, m.renderFooter(w))
	return scr.String()
}

func (m *Model) renderStatus(width int) string {
	msg := strings.TrimSpace(m.status)
	if msg == "" {
		msg = "준비"
	}
	if m.statusErr {
		return renderBar(m.st.statusErr, width, " "+msg)
	}
	return renderBar(m.st.status, width, " "+msg)
}

func (m *Model) renderFooter(width int) string {
	space := m.st.footer.Render(" ")
	sep := m.st.footer.Render("  ")
	var parts []string
	for _, h := range m.keys.Help(m.Scope()) {
		parts = append(parts, m.st.key.Render(h.Key)+space+m.st.keyDesc.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	return renderBar(m.st.footer, width, " "+line)
}
