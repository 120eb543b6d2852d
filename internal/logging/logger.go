// Package logging provides categorized file-based logging for flowdocs.
// Logs are written to .flowdocs/logs/ with a separate file per category.
// Nothing is written unless debug_mode is enabled in flowdocs.yaml.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Category represents a log category.
type Category string

const (
	CategoryBoot    Category = "boot"    // startup, workspace discovery
	CategoryLint    Category = "lint"    // lint runs
	CategoryWatch   Category = "watch"   // filesystem watcher events
	CategoryBlocks  Category = "blocks"  // block store operations
	CategoryProject Category = "project" // scaffolding
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Logger writes to one category file.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggersMu sync.Mutex
	loggers   = map[Category]*Logger{}
	logsDir   string
	enabled   bool
	logLevel  = LevelInfo
)

// Initialize points the logging system at a .flowdocs state directory.
// When debugMode is false every logger is a silent no-op.
func Initialize(stateDir string, debugMode bool, level string) error {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	enabled = debugMode
	logLevel = parseLevel(level)
	if !enabled {
		return nil
	}

	logsDir = filepath.Join(stateDir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("creating logs directory: %w", err)
	}
	return nil
}

func parseLevel(level string) int {
	switch level {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Get returns the logger for a category, creating its file on first use.
func Get(category Category) *Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}
	l := &Logger{category: category}
	if enabled && logsDir != "" {
		path := filepath.Join(logsDir, string(category)+".log")
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			l.file = f
			l.logger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
		}
	}
	loggers[category] = l
	return l
}

// Close flushes and closes every open log file.
func Close() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			_ = l.file.Close()
		}
	}
	loggers = map[Category]*Logger{}
}

func (l *Logger) write(level int, prefix, format string, args ...any) {
	if l.logger == nil || level < logLevel {
		return
	}
	l.logger.Printf("[%s] %s", prefix, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) { l.write(LevelDebug, "DEBUG", format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.write(LevelInfo, "INFO", format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.write(LevelWarn, "WARN", format, args...) }
func (l *Logger) Error(format string, args ...any) { l.write(LevelError, "ERROR", format, args...) }
