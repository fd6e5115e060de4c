// Package app wires the engine, renderer and terminal into an editor.
package app

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Level is the severity of a log message.
type Level int

// Levels in increasing severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level's log tag.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a minimal leveled logger. The terminal itself belongs to the
// editor, so logs go to a file or nowhere.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   io.Writer
}

// NewLogger creates a logger writing to out at the given level. A nil out
// discards everything.
func NewLogger(out io.Writer, level Level) *Logger {
	return &Logger{level: level, out: out}
}

// Discard is a logger that drops all output.
var Discard = &Logger{out: nil, level: LevelError + 1}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) { l.logf(LevelInfo, format, args...) }

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...any) { l.logf(LevelWarn, format, args...) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

func (l *Logger) logf(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil || level < l.level {
		return
	}
	ts := time.Now().Format("2006-01-02T15:04:05.000")
	fmt.Fprintf(l.out, "%s [%s] richdoc: %s\n", ts, level, fmt.Sprintf(format, args...))
}
