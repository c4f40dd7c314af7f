package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gymdesk/internal/overlay"
)

// Field is a one-line date input. Pickers write formatted text into it and
// anchor their popup to its screen rectangle. In edit mode the user types a
// YYYY-MM-DD value instead.
type Field struct {
	label   string
	hint    string
	input   textinput.Model
	rect    overlay.Rect
	display string
	editing bool
}

func newField(label, hint string, width int) *Field {
	inp := textinput.New()
	inp.Prompt = ""
	inp.Placeholder = "YYYY-MM-DD"
	inp.CharLimit = 10
	inp.Width = width - 1
	return &Field{label: label, hint: hint, input: inp}
}

func (f *Field) Bounds() overlay.Rect { return f.rect }

// Scroll is always zero: the form never scrolls.
func (f *Field) Scroll() overlay.Point { return overlay.Point{} }

func (f *Field) SetText(text string) {
	f.display = text
	if !f.editing {
		f.input.SetValue(text)
	}
}

func (f *Field) Text() string { return f.display }
func (f *Field) Editing() bool { return f.editing }

func (f *Field) place(r overlay.Rect) {
	f.rect = r
}

// startEdit switches to typed entry seeded with the current ISO value.
func (f *Field) startEdit(iso string) tea.Cmd {
	f.editing = true
	f.input.SetValue(iso)
	f.input.CursorEnd()
	return f.input.Focus()
}

// stopEdit leaves typed entry and returns what was typed. The displayed
// text reverts to the last value a picker wrote.
func (f *Field) stopEdit() string {
	typed := strings.TrimSpace(f.input.Value())
	f.editing = false
	f.input.Blur()
	f.input.SetValue(f.display)
	return typed
}

func (f *Field) update(msg tea.Msg) tea.Cmd {
	if !f.editing {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *Field) view(st styles, focused bool) string {
	width := f.rect.Width()
	if f.editing {
		return st.field.Render(fit(" "+f.input.View(), width))
	}
	if f.display == "" {
		style := st.fieldHint
		if focused {
			style = st.fieldOn
		}
		return style.Render(fit(" "+f.hint, width))
	}
	style := st.field
	if focused {
		style = st.fieldOn
	}
	return style.Render(fit(" "+f.display, width))
}
