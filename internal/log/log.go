// Package log is a thin leveled wrapper over the standard library's log
// package. The corpus this module was built from logs with plain
// log.Printf throughout (see internal/rpc/publisher.go and
// internal/rpc/websocket.go in the teacher) rather than reaching for a
// structured logging library, so this keeps that idiom and adds only the
// level filtering internal/config's LogConfig needs to turn simulation
// noise down for a large scenario run.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level is a logging severity, ordered from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel parses a config string into a Level, defaulting to Info for
// anything unrecognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger is a leveled logger tagged with a component name (e.g. "node",
// "harness"), matching the section/elder-scoped log lines a running
// simulation wants to produce.
type Logger struct {
	component string
	level     Level
	out       *log.Logger
}

// New returns a Logger writing to w, at the given Level, prefixed with
// component.
func New(w io.Writer, component string, level Level) *Logger {
	return &Logger{
		component: component,
		level:     level,
		out:       log.New(w, "", log.LstdFlags|log.Lmicroseconds),
	}
}

// Default returns a Logger writing to stderr at Info level, for callers
// that haven't loaded a Config yet.
func Default(component string) *Logger {
	return New(os.Stderr, component, LevelInfo)
}

// With returns a copy of l scoped to a sub-component, e.g.
// l.With("node-3") for per-node log lines under a "harness" logger.
func (l *Logger) With(subComponent string) *Logger {
	return &Logger{component: l.component + "." + subComponent, level: l.level, out: l.out}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("[%s] %s: %s", level, l.component, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.log(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(LevelError, format, args...) }
