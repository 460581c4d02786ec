package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/jwebster45206/dungeon/pkg/l10n"
)

// Transcript backends.
const (
	TranscriptNone   = "none"
	TranscriptRedis  = "redis"
	TranscriptSQLite = "sqlite"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	// LogFile receives logs. Empty discards them so they never mix with
	// the story text on the terminal.
	LogFile string

	Locale   string
	Encoding string
	Wrap     int

	Transcript    string
	RedisURL      string
	TranscriptTTL time.Duration
	SQLitePath    string
}

// Load reads the environment. A first positional argument of "en" or "ru"
// selects the locale and takes precedence over DUNGEON_LOCALE.
func Load(args []string) *Config {
	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:       getEnv("DUNGEON_LOG_FILE", ""),
		Locale:        getEnv("DUNGEON_LOCALE", ""),
		Encoding:      getEnv("DUNGEON_ENCODING", "UTF-8"),
		Wrap:          parseInt(getEnv("DUNGEON_WRAP", "80"), 80),
		Transcript:    strings.ToLower(getEnv("DUNGEON_TRANSCRIPT", TranscriptNone)),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		TranscriptTTL: parseDuration(getEnv("DUNGEON_TRANSCRIPT_TTL", "0")),
		SQLitePath:    getEnv("DUNGEON_SQLITE_PATH", "./transcripts.db"),
	}

	if len(args) > 0 {
		switch args[0] {
		case "en":
			cfg.Locale = "en_US"
		case "ru":
			cfg.Locale = "ru_RU"
		}
	}
	return cfg
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.Locale != "" {
		if _, err := l10n.ParseLocale(c.Locale); err != nil {
			el.Add(fmt.Errorf("locale: %w", err))
		}
	}
	if _, err := l10n.LookupEncoding(c.Encoding); err != nil {
		el.Add(fmt.Errorf("encoding: %w", err))
	}
	if c.Wrap < 0 {
		el.Add(fmt.Errorf("wrap must not be negative, got %d", c.Wrap))
	}

	switch c.Transcript {
	case TranscriptNone:
	case TranscriptRedis:
		if c.RedisURL == "" {
			el.Add(fmt.Errorf("redis url is required for the redis transcript"))
		}
		if c.TranscriptTTL < 0 {
			el.Add(fmt.Errorf("transcript ttl must not be negative"))
		}
	case TranscriptSQLite:
		if c.SQLitePath == "" {
			el.Add(fmt.Errorf("sqlite path is required for the sqlite transcript"))
		}
	default:
		el.Add(fmt.Errorf("unknown transcript backend %q", c.Transcript))
	}

	return el.Err()
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// parseDuration accepts Go durations ("90s") or plain seconds ("90").
// Garbage yields -1 so Validate can report it.
func parseDuration(s string) time.Duration {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return -1
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
