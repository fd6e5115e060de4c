// Package main is the entry point for the richdoc editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/richdoc/internal/app"
	"github.com/dshills/richdoc/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var logLevel string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "richdoc - rich text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: richdoc [options] file\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("richdoc %s (%s)\n", version, commit)
		return 0
	}

	if flag.NArg() != 1 {
		flag.Usage()
		return 2
	}
	path := flag.Arg(0)

	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	application, err := app.New(log, cfg, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// defaultConfigPath is ~/.config/richdoc/config.toml; a missing file just
// means defaults.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "richdoc", "config.toml")
}

// openLogger opens the configured log sink. The terminal belongs to the
// editor, so without a log file everything is discarded.
func openLogger(cfg config.LogConfig) (*app.Logger, func(), error) {
	if cfg.File == "" {
		return app.Discard, func() {}, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
	}
	return app.NewLogger(f, app.ParseLevel(cfg.Level)), func() { f.Close() }, nil
}
