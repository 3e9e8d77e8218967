// Package logger provides levelled logging for the repopulse CLI.
// Warnings are always printed to stderr. Info and section headers need
// --log-level=info, and debug messages need --verbose or --log-level=debug.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level controls which messages are printed.
type Level int

// Levels in increasing verbosity.
const (
	LevelWarn Level = iota
	LevelInfo
	LevelDebug
)

var levelNames = map[Level]string{
	LevelWarn:  "warn",
	LevelInfo:  "info",
	LevelDebug: "debug",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel parses a level name (warn, info or debug).
func ParseLevel(s string) (Level, error) {
	for level, name := range levelNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return level, nil
		}
	}
	return LevelWarn, fmt.Errorf("unknown log level %q (want warn, info or debug)", s)
}

var (
	mu     sync.RWMutex
	level            = LevelWarn
	output io.Writer = os.Stderr
)

// SetLevel sets the most verbose level printed.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// GetLevel returns the current level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetVerbose switches between debug and the default warn level.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelWarn)
}

// IsVerbose returns true if debug messages are printed.
func IsVerbose() bool {
	return GetLevel() >= LevelDebug
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if level >= l {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message at debug level.
func Debug(format string, args ...any) {
	logf(LevelDebug, "[DEBUG] ", format, args...)
}

// Section prints a section header at info level.
func Section(name string) {
	logf(LevelInfo, "\n=== ", "%s ===", name)
}

// Info prints an informational message at info level.
func Info(format string, args ...any) {
	logf(LevelInfo, "[INFO] ", format, args...)
}

// Warn prints a warning. Warnings are always printed.
func Warn(format string, args ...any) {
	logf(LevelWarn, "[WARN] ", format, args...)
}
