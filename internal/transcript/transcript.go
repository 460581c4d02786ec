// Package transcript stores what happened in each session, turn by turn.
// It is a record for reading afterwards, not a save game.
package transcript

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jwebster45206/dungeon/internal/config"
	"github.com/jwebster45206/dungeon/pkg/session"
)

// Store is a session recorder that can read its transcripts back.
type Store interface {
	session.Recorder
	Load(ctx context.Context, sessionID uuid.UUID) ([]session.Entry, error)
	Close() error
}

// Open builds the store selected by cfg.Transcript.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.Transcript {
	case config.TranscriptNone, "":
		return Nop{}, nil
	case config.TranscriptRedis:
		return NewRedis(ctx, cfg.RedisURL, cfg.TranscriptTTL, logger)
	case config.TranscriptSQLite:
		return NewSQLite(ctx, cfg.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("unknown transcript backend %q", cfg.Transcript)
	}
}

// Nop discards everything.
type Nop struct{}

var _ Store = Nop{}

func (Nop) Record(context.Context, session.Entry) error { return nil }

func (Nop) Load(context.Context, uuid.UUID) ([]session.Entry, error) { return nil, nil }

func (Nop) Close() error { return nil }
