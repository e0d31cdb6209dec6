package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Level  string // debug|info|warn|error
	Format string // text|json
	App    string
}

// New construye el logger del proceso sobre zerolog.
// FORMAT=text usa ConsoleWriter (dev); json va directo a stdout.
func New(opts Options) zerolog.Logger {
	level := parseLevel(opts.Level)

	var logger zerolog.Logger
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		logger = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).Level(level).With().Timestamp().Logger()
	}

	if app := strings.TrimSpace(opts.App); app != "" {
		logger = logger.With().Str("app", app).Logger()
	}

	return logger
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME (opcional)
func NewFromEnv() zerolog.Logger {
	return New(Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
		App:    os.Getenv("APP_NAME"),
	})
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
