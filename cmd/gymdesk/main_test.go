package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	body := "[filter]\nshortcuts_file = \"" + filepath.ToSlash(filepath.Join(dir, "shortcuts.toml")) + "\"\n"
	if err := os.WriteFile(cfg, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestShortcutsListsDefaults(t *testing.T) {
	cfg := writeTestConfig(t)
	out, err := runCmd(t, "--config", cfg, "shortcuts", "--today", "2025-01-15")
	if err != nil {
		t.Fatalf("shortcuts: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 shortcuts, got %d:\n%s", len(lines), out)
	}
	tests := map[int][]string{
		0: {"오늘", "2025-01-15", "2025-01-15"},
		5: {"지난 달", "2024-12-01", "2024-12-31"},
		7: {"최근 30일", "2024-12-17", "2025-01-15"},
	}
	for i, want := range tests {
		for _, w := range want {
			if !strings.Contains(lines[i], w) {
				t.Errorf("line %d = %q, missing %q", i, lines[i], w)
			}
		}
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(cfg), "shortcuts.toml")); err != nil {
		t.Errorf("expected default shortcuts file to be written: %v", err)
	}
}

func TestShortcutsResolvesLooseLabel(t *testing.T) {
	cfg := writeTestConfig(t)
	out, err := runCmd(t, "--config", cfg, "shortcuts", "--today", "2025-01-15", "지난달")
	if err != nil {
		t.Fatalf("shortcuts: %v", err)
	}
	if !strings.Contains(out, "2024-12-01") || !strings.Contains(out, "2024-12-31") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestShortcutsRejectsBadInput(t *testing.T) {
	cfg := writeTestConfig(t)
	if _, err := runCmd(t, "--config", cfg, "shortcuts", "--today", "2025-13-01"); err == nil {
		t.Error("expected error for invalid --today")
	}
	if _, err := runCmd(t, "--config", cfg, "shortcuts", "--today", "2025-01-15", "다음 세기"); err == nil {
		t.Error("expected error for unknown label")
	}
}
