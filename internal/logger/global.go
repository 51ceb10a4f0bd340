package logger

import (
	"os"
	"strings"
)

var globalLogger *Logger

func init() {
	globalLogger = NewDefault()
	configureFromEnv()
}

// configureFromEnv applies LOG_LEVEL and LOG_FORMAT to the global logger
func configureFromEnv() {
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, ok := ParseLevel(levelStr); ok {
			globalLogger.SetLevel(level)
		}
	}
	if formatStr := os.Getenv("LOG_FORMAT"); formatStr != "" {
		if format, ok := ParseFormat(formatStr); ok {
			globalLogger.SetFormat(format)
		}
	}
}

// ParseLevel parses a level name; ok is false for unknown names
func ParseLevel(level string) (Level, bool) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	case "FATAL":
		return FATAL, true
	default:
		return INFO, false
	}
}

// ParseFormat parses a format name; ok is false for unknown names
func ParseFormat(format string) (Format, bool) {
	switch strings.ToLower(format) {
	case "json":
		return JSONFormat, true
	case "text", "auto":
		return TextFormat, true
	default:
		return TextFormat, false
	}
}

// GetGlobalLogger returns the process-wide logger
func GetGlobalLogger() *Logger {
	return globalLogger
}

// SetGlobalLogger replaces the process-wide logger
func SetGlobalLogger(logger *Logger) {
	globalLogger = logger
}

// Debug logs a debug message using the global logger
func Debug(message string, fields ...Fields) {
	globalLogger.Debug(message, fields...)
}

// Info logs an info message using the global logger
func Info(message string, fields ...Fields) {
	globalLogger.Info(message, fields...)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...Fields) {
	globalLogger.Warn(message, fields...)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...Fields) {
	globalLogger.Error(message, err, fields...)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...Fields) {
	globalLogger.Fatal(message, err, fields...)
}

// Debugf logs a formatted debug message using the global logger
func Debugf(format string, args ...interface{}) {
	globalLogger.Debugf(format, args...)
}

// Infof logs a formatted info message using the global logger
func Infof(format string, args ...interface{}) {
	globalLogger.Infof(format, args...)
}

// Warnf logs a formatted warning message using the global logger
func Warnf(format string, args ...interface{}) {
	globalLogger.Warnf(format, args...)
}

// Errorf logs a formatted error message using the global logger
func Errorf(format string, args ...interface{}) {
	globalLogger.Errorf(format, args...)
}
