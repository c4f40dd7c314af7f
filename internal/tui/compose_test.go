package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/gymdesk/internal/calendar"
	"github.com/jask/gymdesk/internal/datecal"
	"github.com/jask/gymdesk/internal/filtercal"
)

func dotted(width, height int) *screen {
	s := newScreen(width, height)
	for y := range height {
		s.fill(y, strings.Repeat(".", width))
	}
	return s
}

func TestScreenStampReplacesCells(t *testing.T) {
	s := dotted(10, 3)
	s.stamp(3, 1, "ab\ncd")
	want := strings.Join([]string{
		"..........",
		"...ab.....",
		"...cd.....",
	}, "\n")
	if got := s.String(); got != want {
		t.Fatalf("stamp =\n%s\nwant\n%s", got, want)
	}
}

func TestScreenStampIsOpaque(t *testing.T) {
	s := dotted(6, 2)
	s.stamp(1, 0, "abc\nd")
	if got := s.String(); got != ".abc..\n.d  .." {
		t.Fatalf("stamp = %q", got)
	}
}

func TestScreenStampClips(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		block string
		want  string
	}{
		{"rows past bottom", 0, 1, "x\ny\nz", "....\nx..."},
		{"cells past right edge", 2, 0, "abcd", "..ab\n...."},
		{"left of screen", -1, 0, "abc", "bc..\n...."},
		{"fully off screen", 4, 0, "abc", "....\n...."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := dotted(4, 2)
			s.stamp(tt.x, tt.y, tt.block)
			if got := s.String(); got != tt.want {
				t.Fatalf("stamp = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenStampHandlesWideRunes(t *testing.T) {
	s := newScreen(10, 1)
	s.fill(0, "가나다라마")
	s.stamp(2, 0, "XY")
	got := s.String()
	if w := ansi.StringWidth(got); w != 10 {
		t.Errorf("width = %d, want 10", w)
	}
	if got != "가XY다라마" {
		t.Errorf("got %q", got)
	}

	s.stamp(1, 0, "Z")
	if w := ansi.StringWidth(s.String()); w != 10 {
		t.Errorf("splitting a wide rune changed the width to %d", w)
	}
}

func TestFitPadsAndTruncates(t *testing.T) {
	if got := fit("abc", 5); got != "abc  " {
		t.Errorf("fit pad = %q", got)
	}
	if got := fit("abcdef", 4); ansi.StringWidth(got) != 4 || !strings.HasSuffix(got, "…") {
		t.Errorf("fit truncate = %q", got)
	}
	if got := exact("abcdef", 4); got != "abcd" {
		t.Errorf("exact = %q", got)
	}
}

func TestKeyRegistryScopeMatch(t *testing.T) {
	reg := NewKeyRegistry([]KeyBinding{
		{Keys: []string{"/"}, Action: actShortcut, Scopes: []string{scopeFilter}},
		{Keys: []string{"ctrl+c"}, Action: actQuit, Scopes: []string{"*"}},
	})
	slash := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}
	if !reg.IsAction(slash, actShortcut, scopeFilter) {
		t.Fatalf("expected / in filter scope")
	}
	if reg.IsAction(slash, actShortcut, scopePopup) {
		t.Fatalf("did not expect / in popup scope")
	}
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlC}, actQuit, scopeEdit) {
		t.Fatalf("expected ctrl+c to match wildcard scope")
	}
}

func TestDefaultBindingsResolve(t *testing.T) {
	reg := NewKeyRegistry(DefaultKeyBindings())
	tests := []struct {
		msg   tea.KeyMsg
		scope string
		want  string
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, scopeForm, actOpen},
		{tea.KeyMsg{Type: tea.KeyEnter}, scopePopup, actActivate},
		{tea.KeyMsg{Type: tea.KeyEnter}, scopeEdit, actConfirm},
		{tea.KeyMsg{Type: tea.KeySpace}, scopeFilter, actActivate},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'{'}}, scopePopup, actPrevYear},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}}, scopeFilter, actNextMonth},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, scopePopup, ""},
		{tea.KeyMsg{Type: tea.KeyEsc}, scopePopup, actClose},
	}
	for _, tt := range tests {
		if got := reg.Action(tt.msg, tt.scope); got != tt.want {
			t.Errorf("Action(%q, %s) = %q, want %q", tt.msg.String(), tt.scope, got, tt.want)
		}
	}
}

func TestDigitIndex(t *testing.T) {
	tests := map[string]int{"1": 0, "9": 8, "0": 9, "a": -1}
	for in, want := range tests {
		if got := digitIndex(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(in)}); got != want {
			t.Errorf("digitIndex(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("set date: %w", datecal.ErrInvalidDate), "날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"},
		{fmt.Errorf("set range: %w", filtercal.ErrInvalidRange), "기간이 올바르지 않습니다"},
		{fmt.Errorf("shortcut %q: %w", "x", filtercal.ErrUnknownShortcut), "알 수 없는 바로가기입니다"},
		{fmt.Errorf("set date: %w", fmt.Errorf("2026-01-01: %w", calendar.ErrOutOfBounds)), "선택할 수 없는 날짜입니다"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := errorText(tt.err); got != tt.want {
			t.Errorf("errorText(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
