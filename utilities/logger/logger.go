// Package logger provides a simple leveled logging system for icnscomposer.
// It supports Debug, Info, Warn and Error messages and can write to stdout,
// a file, or both at once. Silent mode suppresses everything but errors,
// verbose mode enables debug lines.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Package-level logger configuration
var (
	logDest = log.New(os.Stdout, "", log.Ldate|log.Ltime) // Default: log to stdout
	errDest = log.New(os.Stderr, "", log.Ldate|log.Ltime) // Errors always go to stderr
)

var (
	logFile     string      // Path to log file (if logging to file)
	logFileDest *log.Logger // Logger for file output (nil if not set)
	logCloser   io.Closer   // Open log file handle
	silence     bool        // If true, suppress non-error messages
	verbose     bool        // If true, print debug messages
)

// SetSilent enables or disables silent mode.
// When silent mode is enabled, only error messages are displayed on the
// console. The log file still receives everything.
func SetSilent(isSilent bool) {
	silence = isSilent
}

// SetVerbose enables or disables debug output on the console.
func SetVerbose(isVerbose bool) {
	verbose = isVerbose
}

// SetOutput redirects console output (info/warn/debug and errors) to w.
func SetOutput(w io.Writer) {
	logDest = log.New(w, "", log.Ldate|log.Ltime)
	errDest = log.New(w, "", log.Ldate|log.Ltime)
}

// logPrint is the core logging function that actually writes the message.
// If a log file is configured, messages are written to both the console and
// the file.
func logPrint(logType string, format string, values ...any) {
	message := format
	if len(values) > 0 {
		message = fmt.Sprintf(format, values...)
	}
	logMessage := "[" + logType + "] " + message

	if logFileDest != nil {
		logFileDest.Println(logMessage)
	}

	switch {
	case logType == "Error":
		errDest.Println(logMessage)
	case silence:
	case logType == "Debug" && !verbose:
	default:
		logDest.Println(logMessage)
	}
}

// Debug logs a debug message (detailed information for developers).
func Debug(format string, values ...any) {
	logPrint("Debug", format, values...)
}

// Info logs an informational message.
func Info(format string, values ...any) {
	logPrint("Info", format, values...)
}

// Warn logs a warning message. Execution continues.
func Warn(format string, values ...any) {
	logPrint("Warn", format, values...)
}

// Error logs an error. It never exits; the caller decides whether the
// error is fatal.
func Error(err error) {
	if err == nil {
		return
	}
	logPrint("Error", "%s", err.Error())
}

// SetLogFile sets up logging to a file in addition to the console.
// The file is named <appName>_YYYY-MM-DD_HH-MM-SS.log and created in logDir
// (current directory when logDir is empty). The file is opened in append mode.
func SetLogFile(appName string, logDir string) error {
	timeStr := time.Now().Format("2006-01-02_15-04-05")
	fileName := fmt.Sprintf("%s_%s.log", appName, timeStr)

	filePath := fileName
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		filePath = filepath.Join(logDir, fileName)
	}

	return SetLogFileWithPath(filePath)
}

// SetLogFileWithPath sets up logging to a specific file path, replacing any
// previously configured log file.
func SetLogFileWithPath(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	Close()
	logFile = filePath
	logFileDest = log.New(file, "", log.Ldate|log.Ltime)
	logCloser = file

	return nil
}

// Close closes the log file, if one is open.
func Close() {
	if logCloser != nil {
		logCloser.Close()
	}
	logCloser = nil
	logFileDest = nil
	logFile = ""
}

// GetLogFilePath returns the current log file path, or empty string if no log file is set.
func GetLogFilePath() string {
	return logFile
}
