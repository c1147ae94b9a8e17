package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	logMu           sync.Mutex
	currentLogLevel = LevelInfo
	logOutput       io.Writer = os.Stderr
	useColors       = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
)

// SetLogLevel sets the minimum log level to display
func SetLogLevel(level LogLevel) {
	logMu.Lock()
	defer logMu.Unlock()
	currentLogLevel = level
}

// GetLogLevel returns the current minimum log level
func GetLogLevel() LogLevel {
	logMu.Lock()
	defer logMu.Unlock()
	return currentLogLevel
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		SetLogLevel(LevelDebug)
	}
}

// SetQuiet enables quiet mode (errors only)
func SetQuiet(quiet bool) {
	if quiet {
		SetLogLevel(LevelError)
	}
}

// SetColors enables or disables colored output
func SetColors(enabled bool) {
	logMu.Lock()
	defer logMu.Unlock()
	useColors = enabled
}

// SetOutput redirects log lines to w. Colors are switched off unless w is a terminal.
func SetOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	logOutput = w
	if f, ok := w.(*os.File); ok {
		useColors = isatty.IsTerminal(f.Fd())
	} else {
		useColors = false
	}
}

func colorize(color string, text string) string {
	if !useColors {
		return text
	}
	return color + text + "\033[0m"
}

func logf(level LogLevel, color, tag, format string, args ...interface{}) {
	logMu.Lock()
	defer logMu.Unlock()
	if currentLogLevel > level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(logOutput, "%s %s %s\n", colorize(color, timestamp()), tag, msg)
}

// DebugLog logs debug messages
func DebugLog(format string, args ...interface{}) {
	logf(LevelDebug, "\033[90m", "[DEBUG]", format, args...)
}

// InfoLog logs informational messages
func InfoLog(format string, args ...interface{}) {
	logf(LevelInfo, "\033[36m", "[INFO] ", format, args...)
}

// WarnLog logs warning messages
func WarnLog(format string, args ...interface{}) {
	logf(LevelWarn, "\033[33m", "[WARN] ", format, args...)
}

// ErrorLog logs error messages
func ErrorLog(format string, args ...interface{}) {
	logf(LevelError, "\033[31m", "[ERROR]", format, args...)
}

// SuccessLog logs success messages (always shown unless quiet)
func SuccessLog(format string, args ...interface{}) {
	logf(LevelInfo, "\033[32m", "[OK]   ", format, args...)
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}
