// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// New returns a logger writing to stderr. format is "text" for a
// console writer or "json" for one JSON object per line.
func New(level, format string) *log.Logger {
	return NewWithWriter(level, format, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(level, format string, w io.Writer) *log.Logger {
	logger := &log.Logger{
		Level:  ParseLevel(level),
		Caller: 0,
	}

	switch strings.ToLower(format) {
	case "text":
		logger.Writer = &log.ConsoleWriter{
			Writer:         w,
			ColorOutput:    false,
			EndWithMessage: true,
		}
	default:
		logger.Writer = &log.IOWriter{Writer: w}
	}
	return logger
}

// ParseLevel maps debug/info/warn/error to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
