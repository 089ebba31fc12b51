package internal

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarn:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	default:
		return "TRACE"
	}
}

// maxRecords bounds the in-memory record ring behind the log download
const maxRecords = 2000

// Record is one retained log entry
type Record struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

// Logger provides leveled logging and retains recent records in memory so
// operators can download the session log from the admin surface.
type Logger struct {
	level LogLevel

	mu       sync.Mutex
	records  []Record
	counters map[LogLevel]int
}

// NewLogger creates a new logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return &Logger{
		level:    level,
		counters: make(map[LogLevel]int),
	}
}

// NewDefaultLogger creates a logger based on LOG_LEVEL environment variable
func NewDefaultLogger() *Logger {
	level := LogLevelInfo // default
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		level = LogLevelError
	case "WARN":
		level = LogLevelWarn
	case "INFO":
		level = LogLevelInfo
	case "DEBUG":
		level = LogLevelDebug
	case "TRACE":
		level = LogLevelTrace
	}
	return NewLogger(level)
}

func (l *Logger) logf(level LogLevel, format string, args ...interface{}) {
	if l.level < level {
		return
	}
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", level, message)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.counters[level]++
	l.records = append(l.records, Record{Time: time.Now(), Level: level, Message: message})
	if len(l.records) > maxRecords {
		l.records = l.records[len(l.records)-maxRecords:]
	}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LogLevelError, format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogLevelWarn, format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LogLevelInfo, format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogLevelDebug, format, args...)
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	l.logf(LogLevelTrace, format, args...)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// HasErrors reports whether any error has been logged
func (l *Logger) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counters[LogLevelError] > 0
}

// RecentErrors returns up to count most recent error records, oldest first
func (l *Logger) RecentErrors(count int) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	var errs []Record
	for _, r := range l.records {
		if r.Level == LogLevelError {
			errs = append(errs, r)
		}
	}
	if len(errs) > count {
		errs = errs[len(errs)-count:]
	}
	return errs
}

// Render produces the downloadable log file for the admin surface
func (l *Logger) Render() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 80) + "\n")
	b.WriteString("PCON Manifest Service - Log File\n")
	b.WriteString("Generated: " + time.Now().Format("2006-01-02 15:04:05") + "\n")
	fmt.Fprintf(&b, "Total Logs: %d (Errors: %d, Warnings: %d, Info: %d)\n",
		len(l.records), l.counters[LogLevelError], l.counters[LogLevelWarn], l.counters[LogLevelInfo])
	b.WriteString(strings.Repeat("=", 80) + "\n\n")
	for _, r := range l.records {
		fmt.Fprintf(&b, "[%s] %s: %s\n", r.Time.Format("2006-01-02 15:04:05"), r.Level, r.Message)
	}
	return b.String()
}

// Clear drops all retained records and resets the counters
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	l.counters = make(map[LogLevel]int)
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
