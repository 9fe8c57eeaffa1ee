// Package logging configures the zerolog logger shared by the application.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Configure builds a logger writing to out and installs it as the global logger.
// Pretty output is for terminals; otherwise lines are JSON.
func Configure(out io.Writer, level Level, pretty bool) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(level))

	writer := out
	if pretty {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
		}
	}

	logger := zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// LevelFromEnv returns debug when DEBUG is set to a true value, else fallback.
func LevelFromEnv(fallback Level) Level {
	switch strings.ToLower(os.Getenv("DEBUG")) {
	case "1", "true":
		return LevelDebug
	case "0", "false":
		return LevelInfo
	}
	if fallback == "" {
		return LevelInfo
	}
	return fallback
}

func parseLevel(level Level) zerolog.Level {
	switch Level(strings.ToLower(string(level))) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
