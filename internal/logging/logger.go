package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"turfbook/internal/config"

	"github.com/rs/zerolog"
)

// New builds the process root logger. Unknown or empty settings fall
// back to JSON on stdout at info level.
func New(cfg config.LoggingConfig, app config.AppConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stdout
	if strings.EqualFold(strings.TrimSpace(cfg.Output), "stderr") {
		out = os.Stderr
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("app", app.Name).
		Str("env", app.Environment).
		Str("version", app.Version).
		Logger()
}

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Component derives a child logger tagged with a subsystem name.
func Component(parent *zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str("component", name).Logger()
}
