package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/dungeon/internal/config"
)

// Setup configures the global slog logger based on environment. Logs go to
// cfg.LogFile, or nowhere when it is empty, so they stay out of the game
// text. The returned close func releases the file.
func Setup(cfg *config.Config) (*slog.Logger, func() error, error) {
	var (
		out     io.Writer = io.Discard
		closeFn           = func() error { return nil }
	)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	logger := slog.New(NewHandler(out, cfg))

	// Set as default logger
	slog.SetDefault(logger)

	return logger, closeFn, nil
}

// NewHandler picks the handler for the environment: JSON in production,
// text otherwise.
func NewHandler(w io.Writer, cfg *config.Config) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	if cfg.Environment == "production" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
