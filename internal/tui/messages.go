package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gymdesk/internal/calendar"
	"github.com/jask/gymdesk/internal/datecal"
	"github.com/jask/gymdesk/internal/filtercal"
	"github.com/jask/gymdesk/internal/picker"
)

// statusMsg replaces the status line.
type statusMsg struct {
	text  string
	isErr bool
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

// errorCmd reports err on the status line, translating the date errors a
// user can cause from the keyboard.
func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return statusMsg{}
		}
		return statusMsg{text: errorText(err), isErr: true}
	}
}

func errorText(err error) string {
	switch {
	case errors.Is(err, datecal.ErrInvalidDate):
		return "날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	case errors.Is(err, picker.ErrInvalidRange), errors.Is(err, filtercal.ErrInvalidRange):
		return "기간이 올바르지 않습니다"
	case errors.Is(err, calendar.ErrOutOfBounds):
		return "선택할 수 없는 날짜입니다"
	case errors.Is(err, filtercal.ErrUnknownShortcut):
		return "알 수 없는 바로가기입니다"
	}
	return err.Error()
}
