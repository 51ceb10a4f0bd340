package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Format represents the output format for log entries
type Format int

const (
	JSONFormat Format = iota
	TextFormat
)

// Fields carries structured key/value context for a log entry
type Fields map[string]interface{}

// entry is the wire form of a single log line
type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Component string `json:"component,omitempty"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger is a leveled, structured logger
type Logger struct {
	mu        sync.Mutex
	level     Level
	format    Format
	output    io.Writer
	component string
}

// Config holds logger configuration
type Config struct {
	Level     Level
	Format    Format
	Output    io.Writer
	Component string
}

// New creates a logger with the given configuration
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return &Logger{
		level:     cfg.Level,
		format:    cfg.Format,
		output:    cfg.Output,
		component: cfg.Component,
	}
}

// NewDefault creates a logger with INFO level and text output
func NewDefault() *Logger {
	return New(Config{Level: INFO, Format: TextFormat})
}

// WithComponent returns a child logger tagged with a component name
func (l *Logger) WithComponent(component string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{
		level:     l.level,
		format:    l.format,
		output:    l.output,
		component: component,
	}
}

// SetLevel sets the minimum level emitted
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetFormat sets the output format
func (l *Logger) SetFormat(format Format) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = format
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Component: l.component,
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		e.Error = err.Error()
	}

	var line string
	if l.format == JSONFormat {
		raw, _ := json.Marshal(e)
		line = string(raw) + "\n"
	} else {
		line = formatText(e)
	}
	l.output.Write([]byte(line))

	if level == FATAL {
		os.Exit(1)
	}
}

// formatText renders an entry as a single human-readable line
func formatText(e entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Timestamp, e.Level)
	if e.Component != "" {
		fmt.Fprintf(&b, " [%s]", e.Component)
	}
	b.WriteString(" " + e.Message)
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, e.Fields[k])
		}
		fmt.Fprintf(&b, " fields={%s}", strings.Join(parts, ", "))
	}
	if e.Error != "" {
		fmt.Fprintf(&b, " error=%s", e.Error)
	}
	b.WriteString("\n")
	return b.String()
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(DEBUG, message, first(fields), nil)
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(INFO, message, first(fields), nil)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(WARN, message, first(fields), nil)
}

// Error logs an error message
func (l *Logger) Error(message string, err error, fields ...Fields) {
	l.log(ERROR, message, first(fields), err)
}

// Fatal logs a fatal message and exits the process
func (l *Logger) Fatal(message string, err error, fields ...Fields) {
	l.log(FATAL, message, first(fields), err)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a formatted fatal message and exits
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.Fatal(fmt.Sprintf(format, args...), nil)
}

func first(fields []Fields) Fields {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}
