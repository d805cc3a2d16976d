// SPDX-License-Identifier: MIT

// Package log is the process-wide, level-gated diagnostic log. Lines are
// written through the standard library logger so they stay plain text and
// line oriented, which is what a serial console expects.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync/atomic"
)

// LogLevel defines the severity of a log message.
type LogLevel uint32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string (case-insensitive) to a LogLevel.
// Returns LevelInfo and false if the string is not recognized.
func ParseLevel(levelStr string) (LogLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	case "FATAL":
		return LevelFatal, true
	default:
		return LevelInfo, false
	}
}

var currentLevel atomic.Uint32

var logger = stdlog.New(os.Stderr, "", stdlog.Ldate|stdlog.Ltime|stdlog.Lmicroseconds)

// exit is swapped by tests.
var exit = os.Exit

func init() {
	SetLevel(LevelInfo)
}

func SetLevel(level LogLevel) {
	currentLevel.Store(uint32(level))
}

func GetLevel() LogLevel {
	return LogLevel(currentLevel.Load())
}

// SetOutput redirects every subsequent line to w. Use io.MultiWriter to keep
// stderr while mirroring to a serial port.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Writer returns the current destination.
func Writer() io.Writer {
	return logger.Writer()
}

func shouldLog(level LogLevel) bool {
	return level >= GetLevel()
}

func output(level LogLevel, msg string) {
	if !shouldLog(level) {
		return
	}
	// Pad the four-letter levels so messages line up.
	pad := " "
	if len(level.String()) == 4 {
		pad = "  "
	}
	logger.Print("[" + level.String() + "]" + pad + msg)
}

func Debugf(format string, v ...any) { output(LevelDebug, fmt.Sprintf(format, v...)) }
func Infof(format string, v ...any)  { output(LevelInfo, fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...any)  { output(LevelWarn, fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...any) { output(LevelError, fmt.Sprintf(format, v...)) }

// Fatalf logs regardless of level and exits with status 1.
func Fatalf(format string, v ...any) {
	logger.Printf("[%s] %s", LevelFatal, fmt.Sprintf(format, v...))
	exit(1)
}

func Debug(v ...any) { output(LevelDebug, fmt.Sprint(v...)) }
func Info(v ...any)  { output(LevelInfo, fmt.Sprint(v...)) }
func Warn(v ...any)  { output(LevelWarn, fmt.Sprint(v...)) }
func Error(v ...any) { output(LevelError, fmt.Sprint(v...)) }

func Fatal(v ...any) {
	logger.Printf("[%s] %s", LevelFatal, fmt.Sprint(v...))
	exit(1)
}

// Logger prefixes every message with a component name, e.g.
// "Acquisition: source changed to TST: SINE".
type Logger struct {
	prefix string
}

// For returns a Logger for the named component.
func For(component string) Logger {
	return Logger{prefix: component + ": "}
}

func (l Logger) Debugf(format string, v ...any) {
	output(LevelDebug, l.prefix+fmt.Sprintf(format, v...))
}

func (l Logger) Infof(format string, v ...any) {
	output(LevelInfo, l.prefix+fmt.Sprintf(format, v...))
}

func (l Logger) Warnf(format string, v ...any) {
	output(LevelWarn, l.prefix+fmt.Sprintf(format, v...))
}

func (l Logger) Errorf(format string, v ...any) {
	output(LevelError, l.prefix+fmt.Sprintf(format, v...))
}
