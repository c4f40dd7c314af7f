package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key scopes. The active scope decides which bindings apply and which are
// listed in the footer.
const (
	scopeForm   = "form"
	scopePopup  = "popup"
	scopeFilter = "filter"
	scopeEdit   = "edit"
	scopePrompt = "prompt"
)

// Actions.
const (
	actQuit        = "quit"
	actNextField   = "next-field"
	actPrevField   = "prev-field"
	actOpen        = "open"
	actEdit        = "edit"
	actClear       = "clear"
	actClose       = "close"
	actActivate    = "activate"
	actLeft        = "left"
	actRight       = "right"
	actUp          = "up"
	actDown        = "down"
	actPrevMonth   = "prev-month"
	actNextMonth   = "next-month"
	actPrevYear    = "prev-year"
	actNextYear    = "next-year"
	actToday       = "today"
	actShortcut    = "shortcut"
	actConfirm     = "confirm"
	actCancel      = "cancel"
	actPresetIndex = "preset"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return true
			}
		}
	}
	return false
}

// Action returns the first action bound to msg in scope, or "".
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action
			}
		}
	}
	return ""
}

// Help renders the scope's bindings as key/description pairs.
func (r *KeyRegistry) Help(scope string) []key.Help {
	bindings := r.BindingsForScope(scope)
	out := make([]key.Help, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 || b.Description == "" {
			continue
		}
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
		out = append(out, kb.Help())
	}
	return out
}

func normalizeKey(k string) string {
	if k == " " {
		return "space"
	}
	k = strings.TrimSpace(k)
	// Single runes stay case sensitive so "[" and "{" bindings survive.
	if len([]rune(k)) == 1 {
		return k
	}
	return strings.ToLower(k)
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

var calendarScopes = []string{scopePopup, scopeFilter}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: actQuit, Scopes: []string{"*"}},
		{Keys: []string{"q"}, Action: actQuit, Description: "quit", Scopes: []string{scopeForm, scopeFilter}},
		{Keys: []string{"tab"}, Action: actNextField, Description: "next", Scopes: []string{scopeForm, scopeFilter}},
		{Keys: []string{"shift+tab"}, Action: actPrevField, Description: "prev", Scopes: []string{scopeForm, scopeFilter}},
		{Keys: []string{"enter", "space"}, Action: actOpen, Description: "calendar", Scopes: []string{scopeForm}},
		{Keys: []string{"e"}, Action: actEdit, Description: "type date", Scopes: []string{scopeForm}},
		{Keys: []string{"x", "backspace"}, Action: actClear, Description: "clear", Scopes: []string{scopeForm, scopeFilter}},

		{Keys: []string{"left", "h"}, Action: actLeft, Description: "day", Scopes: calendarScopes},
		{Keys: []string{"right", "l"}, Action: actRight, Scopes: calendarScopes},
		{Keys: []string{"up", "k"}, Action: actUp, Description: "week", Scopes: calendarScopes},
		{Keys: []string{"down", "j"}, Action: actDown, Scopes: calendarScopes},
		{Keys: []string{"enter", "space"}, Action: actActivate, Description: "pick", Scopes: calendarScopes},
		{Keys: []string{"["}, Action: actPrevMonth, Description: "month", Scopes: calendarScopes},
		{Keys: []string{"]"}, Action: actNextMonth, Scopes: calendarScopes},
		{Keys: []string{"{"}, Action: actPrevYear, Description: "year", Scopes: calendarScopes},
		{Keys: []string{"}"}, Action: actNextYear, Scopes: calendarScopes},
		{Keys: []string{"t"}, Action: actToday, Description: "today", Scopes: calendarScopes},
		{Keys: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}, Action: actPresetIndex, Description: "preset", Scopes: calendarScopes},
		{Keys: []string{"/"}, Action: actShortcut, Description: "shortcut", Scopes: []string{scopeFilter}},
		{Keys: []string{"esc"}, Action: actClose, Description: "close", Scopes: []string{scopePopup}},

		{Keys: []string{"enter"}, Action: actConfirm, Description: "apply", Scopes: []string{scopeEdit, scopePrompt}},
		{Keys: []string{"esc"}, Action: actCancel, Description: "cancel", Scopes: []string{scopeEdit, scopePrompt}},
	}
}
