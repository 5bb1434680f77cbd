package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog logger writing to stderr
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	color := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	return newLogger(cfg, os.Stderr, color)
}

// newLogger configures the zerolog logger
func newLogger(cfg LoggingConfig, out io.Writer, color bool) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
