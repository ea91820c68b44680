// Package logging provides the process-wide logger for the worklog CLI.
//
// All log output goes to stderr: when running as an MCP server, stdout is
// reserved for the protocol stream.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	root zerolog.Logger
)

// Logger returns the process-wide root logger.
// The level is read from WORKLOG_LOG_LEVEL on first use (default: warn).
func Logger() *zerolog.Logger {
	once.Do(func() {
		level := parseLevel(os.Getenv("WORKLOG_LOG_LEVEL"))
		writer := zerolog.ConsoleWriter{Out: os.Stderr}
		root = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	})
	return &root
}

// parseLevel maps a level name to a zerolog level, defaulting to warn.
func parseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
