package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jask/gymdesk/internal/filtercal"
)

// ShortcutDef is one [[shortcut]] block of the shortcuts file.
type ShortcutDef struct {
	Label string `toml:"label"`
	Kind  string `toml:"kind"`
	N     int    `toml:"n,omitempty"`
}

type shortcutsFile struct {
	Shortcut []ShortcutDef `toml:"shortcut"`
}

const defaultShortcutsTOML = `# gymdesk filter calendar shortcuts
# kind is one of: today, yesterday, this_week, last_week, this_month,
# last_month, last_days, last_months, this_year. last_days and last_months
# take a count in n.

[[shortcut]]
label = "오늘"
kind = "today"

[[shortcut]]
label = "어제"
kind = "yesterday"

[[shortcut]]
label = "이번 주"
kind = "this_week"

[[shortcut]]
label = "지난 주"
kind = "last_week"

[[shortcut]]
label = "이번 달"
kind = "this_month"

[[shortcut]]
label = "지난 달"
kind = "last_month"

[[shortcut]]
label = "최근 7일"
kind = "last_days"
n = 7

[[shortcut]]
label = "최근 30일"
kind = "last_days"
n = 30

[[shortcut]]
label = "최근 3개월"
kind = "last_months"
n = 3

[[shortcut]]
label = "올해"
kind = "this_year"
`

// DefaultShortcutDefs returns the built-in shortcut bar.
func DefaultShortcutDefs() []ShortcutDef {
	defs, err := ParseShortcuts([]byte(defaultShortcutsTOML))
	if err != nil {
		panic(err)
	}
	return defs
}

// LoadShortcuts reads shortcut definitions from path. If the file doesn't
// exist it is created with the defaults. On any error the defaults are
// returned alongside it.
func LoadShortcuts(path string) ([]ShortcutDef, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return DefaultShortcutDefs(), fmt.Errorf("create config dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultShortcutsTOML), 0o644); wErr != nil {
			return DefaultShortcutDefs(), fmt.Errorf("write default shortcuts: %w", wErr)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultShortcutDefs(), fmt.Errorf("read shortcuts: %w", err)
	}
	defs, err := ParseShortcuts(data)
	if err != nil {
		return DefaultShortcutDefs(), err
	}
	return defs, nil
}

// ParseShortcuts parses TOML bytes into normalized shortcut definitions.
// Later blocks reusing a label are dropped.
func ParseShortcuts(data []byte) ([]ShortcutDef, error) {
	var f shortcutsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse shortcuts.toml: %w", err)
	}
	if len(f.Shortcut) == 0 {
		return nil, fmt.Errorf("no shortcuts defined")
	}
	out := make([]ShortcutDef, 0, len(f.Shortcut))
	seen := make(map[string]bool, len(f.Shortcut))
	for i, d := range f.Shortcut {
		d = normalizeShortcut(d)
		if d.Label == "" {
			return nil, fmt.Errorf("shortcut[%d]: label is required", i)
		}
		if d.Kind == "" {
			return nil, fmt.Errorf("shortcut[%d] %q: kind is required", i, d.Label)
		}
		if d.N < 0 {
			return nil, fmt.Errorf("shortcut[%d] %q: n must not be negative", i, d.Label)
		}
		if seen[d.Label] {
			continue
		}
		seen[d.Label] = true
		out = append(out, d)
	}
	return out, nil
}

func normalizeShortcut(d ShortcutDef) ShortcutDef {
	d.Label = strings.TrimSpace(d.Label)
	d.Kind = strings.ToLower(strings.TrimSpace(d.Kind))
	return d
}

// SaveShortcuts writes definitions to path, creating the directory if
// needed.
func SaveShortcuts(path string, defs []ShortcutDef) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(shortcutsFile{Shortcut: defs}); err != nil {
		return fmt.Errorf("encode shortcuts.toml: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write shortcuts.toml: %w", err)
	}
	return nil
}

// BuildShortcuts turns definitions into filter calendar shortcuts.
func BuildShortcuts(defs []ShortcutDef, weekStart time.Weekday) ([]filtercal.Shortcut, error) {
	out := make([]filtercal.Shortcut, 0, len(defs))
	for _, d := range defs {
		s, err := filtercal.NewShortcut(d.Label, d.Kind, d.N, weekStart)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
