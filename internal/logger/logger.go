// Package logger provides leveled, optionally colored logging to a writer.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Level defines log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// ParseLevel converts a level name to a Level. Unknown names map to Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger writes timestamped, level-prefixed lines.
type Logger struct {
	out       io.Writer
	level     Level
	useColors bool
}

// New creates a Logger writing to out at the given level.
func New(out io.Writer, level Level, useColors bool) *Logger {
	return &Logger{out: out, level: level, useColors: useColors}
}

// SetLevel changes the minimum level that gets written.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) log(level Level, prefix string, colorize func(string, ...interface{}) string, format string, args []interface{}) {
	if l.level > level {
		return
	}
	if l.useColors {
		prefix = colorize(prefix)
	}
	fmt.Fprintf(l.out, "[%s %s] %s\n", time.Now().Format("15:04:05.000"), prefix, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, "DEBUG", color.CyanString, format, args)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, "INFO", color.BlueString, format, args)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, "WARN", color.YellowString, format, args)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, "ERROR", color.RedString, format, args)
}
