package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Encoding  string `envconfig:"ENCODING"`
	Level     string `envconfig:"LEVEL"`
	AddSource bool   `envconfig:"ADD_SOURCE" default:"false"`
}

func New(app string, cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "console"
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		panic(fmt.Errorf("invalid logger config: %w", err))
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler

	switch encoding {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	case "console":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "none":
		handler = slog.NewTextHandler(io.Discard, opts)
	default:
		panic(fmt.Errorf("invalid logger config: encoding %s is not supported", encoding))
	}

	return slog.New(handler).With("app", app)
}

// NewNop логгер для тестов
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ForSession логгер сессии мини-приложения
func ForSession(log *slog.Logger, sessionID string, userID int64) *slog.Logger {
	return log.With(
		"session_id", sessionID,
		"user_id", userID,
	)
}

// parseLevel парсит строковый уровень в slog.Level
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("level %s is not supported", level)
	}
}
