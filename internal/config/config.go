package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Picker  PickerConfig  `mapstructure:"picker"`
	Overlay OverlayConfig `mapstructure:"overlay"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Log     LogConfig     `mapstructure:"log"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	WeekStart   string `mapstructure:"week_start"`
	ThemeAccent string `mapstructure:"theme_accent"`
}

// PickerConfig holds range picker behaviour.
type PickerConfig struct {
	Presets      []int `mapstructure:"presets"`
	ShowDuration bool  `mapstructure:"show_duration"`
}

// OverlayConfig holds popup placement margins in cells.
type OverlayConfig struct {
	Gap  int `mapstructure:"gap"`
	Edge int `mapstructure:"edge"`
}

// FilterConfig points at the shortcut definitions file.
type FilterConfig struct {
	ShortcutsFile string `mapstructure:"shortcuts_file"`
}

// LogConfig holds log file settings. An empty file disables logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// GYMDESK_. path, when set, wins over $GYMDESK_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("ui.week_start", "sunday")
	v.SetDefault("ui.theme_accent", "#89b4fa")
	v.SetDefault("picker.presets", []int{7, 10, 30, 365})
	v.SetDefault("picker.show_duration", true)
	v.SetDefault("overlay.gap", 0)
	v.SetDefault("overlay.edge", 1)
	v.SetDefault("filter.shortcuts_file", defaultShortcutsPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("GYMDESK_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "gymdesk"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GYMDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

// WeekStart returns the configured first column of the month grid.
func (c Config) WeekStart() time.Weekday {
	if c.UI.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

func normalize(c Config) Config {
	switch strings.ToLower(strings.TrimSpace(c.UI.WeekStart)) {
	case "monday":
		c.UI.WeekStart = "monday"
	default:
		c.UI.WeekStart = "sunday"
	}
	c.UI.ThemeAccent = strings.TrimSpace(c.UI.ThemeAccent)

	presets := make([]int, 0, len(c.Picker.Presets))
	seen := make(map[int]bool, len(c.Picker.Presets))
	for _, p := range c.Picker.Presets {
		if p > 0 && !seen[p] {
			seen[p] = true
			presets = append(presets, p)
		}
	}
	c.Picker.Presets = presets

	if c.Overlay.Gap < 0 {
		c.Overlay.Gap = 0
	}
	if c.Overlay.Edge < 0 {
		c.Overlay.Edge = 0
	}

	c.Filter.ShortcutsFile = strings.TrimSpace(c.Filter.ShortcutsFile)
	if c.Filter.ShortcutsFile == "" {
		c.Filter.ShortcutsFile = defaultShortcutsPath()
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "warn", "error":
		c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	default:
		c.Log.Level = "info"
	}
	c.Log.File = strings.TrimSpace(c.Log.File)
	return c
}

// configDir returns the directory for gymdesk config files, using
// XDG_CONFIG_HOME or falling back to ~/.config.
func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.Getenv("HOME"), ".config", "gymdesk")
	}
	return filepath.Join(dir, "gymdesk")
}

func defaultShortcutsPath() string {
	return filepath.Join(configDir(), "shortcuts.toml")
}
