// internal/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Log levels
const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu      sync.Mutex
	level   = LevelInfo
	loggers = map[int]*log.Logger{
		LevelDebug: log.New(os.Stdout, "[DEBUG] ", log.LstdFlags),
		LevelInfo:  log.New(os.Stdout, "[INFO] ", log.LstdFlags),
		LevelWarn:  log.New(os.Stdout, "[WARN] ", log.LstdFlags),
		LevelError: log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
	}
)

// Init initializes the logger
func Init() {
	// Default initialization
}

// SetOutput sets the output for all loggers
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	for _, l := range loggers {
		l.SetOutput(w)
	}
}

// SetLevel sets the log level from a string (debug, info, warn, error)
func SetLevel(levelStr string) {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(levelStr) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	default:
		level = LevelInfo
	}
}

func output(lvl int, format string, v ...interface{}) {
	if level > lvl {
		return
	}
	loggers[lvl].Output(3, fmt.Sprintf(format, v...))
}

// Debug logs a debug message
func Debug(format string, v ...interface{}) {
	output(LevelDebug, format, v...)
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	output(LevelInfo, format, v...)
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	output(LevelWarn, format, v...)
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	output(LevelError, format, v...)
}
