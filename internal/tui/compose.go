package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// screen is the terminal frame: a fixed grid of rows that the form, the
// filter panel and the open calendar popup are stamped onto in paint order.
type screen struct {
	width  int
	height int
	rows   []string
}

func newScreen(width, height int) *screen {
	rows := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range rows {
		rows[i] = blank
	}
	return &screen{width: width, height: height, rows: rows}
}

// fill replaces row y with line, cut or padded to the screen width.
func (s *screen) fill(y int, line string) {
	if y < 0 || y >= s.height {
		return
	}
	s.rows[y] = exact(line, s.width)
}

// stamp paints block with its top-left cell at (x, y). The block is treated
// as opaque: short lines are padded to its widest line so a popup hides
// whatever is under its whole rectangle. Rows off screen are dropped and
// cells past the right edge are cut.
func (s *screen) stamp(x, y int, block string) {
	w := lipgloss.Width(block)
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= s.height {
			continue
		}
		s.rows[row] = splice(s.rows[row], x, pad(line, w), s.width)
	}
}

func (s *screen) String() string {
	return strings.Join(s.rows, "\n")
}

// splice overwrites row from cell x with seg and keeps the row exactly
// width cells wide. A wide rune split by either edge of seg becomes a space.
func splice(row string, x int, seg string, width int) string {
	if x >= width {
		return row
	}
	if x < 0 {
		seg = ansi.TruncateLeft(seg, -x, "")
		x = 0
	}
	end := min(x+ansi.StringWidth(seg), width)
	seg = ansi.Truncate(seg, end-x, "")
	left := pad(ansi.Cut(row, 0, x), x)
	right := ansi.Cut(row, end, width)
	return exact(left+seg+right, width)
}

// pad right-pads s with spaces to width cells.
func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// exact cuts or pads s to width cells.
func exact(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return pad(ansi.Truncate(s, width, ""), width)
}

// fit is exact with an ellipsis marking cut text, for field contents.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return pad(ansi.Truncate(s, width, "…"), width)
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := exact(strings.ReplaceAll(text, "\n", " "), width)
	return style.Width(width).MaxWidth(width).Render(line)
}
