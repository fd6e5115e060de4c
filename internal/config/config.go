// Package config loads editor configuration from a TOML file, filling in
// defaults for anything the file leaves out. A missing file is not an
// error: the defaults stand alone.
package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the full editor configuration.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Theme  ThemeConfig  `toml:"theme"`
	Log    LogConfig    `toml:"log"`
}

// EditorConfig holds engine-facing settings.
type EditorConfig struct {
	// WrapWidth is the soft-wrap column; zero or negative means wrap at
	// the terminal width.
	WrapWidth int `toml:"wrap_width"`

	// InlineTolerance is the same-line geometry tolerance in cells.
	InlineTolerance float64 `toml:"inline_tolerance"`

	// MacroFile is an optional Lua script run at startup.
	MacroFile string `toml:"macro_file"`

	// WatchFile reloads the open file when it changes on disk and the
	// buffer has no unsaved edits.
	WatchFile bool `toml:"watch_file"`
}

// ThemeConfig holds hex color strings; empty values use built-in defaults.
type ThemeConfig struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Selection  string `toml:"selection"`
}

// LogConfig controls the application log.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File receives the log; empty discards it (the terminal is busy
	// being an editor).
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			WrapWidth:       0,
			InlineTolerance: 0.5,
			WatchFile:       true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration at path, layered over the defaults. A
// nonexistent path yields the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}
