package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/dungeon/internal/transcript"
)

const (
	// PollInterval is how often to check the transcript store for entries
	PollInterval = 100 * time.Millisecond
	// TranscriptTimeout is max time to wait for a transcript to be complete
	TranscriptTimeout = 5 * time.Second
)

// VerifyTranscript waits until the store holds want entries for the session
// and checks they are numbered 0..want-1. Stores that keep nothing pass.
func VerifyTranscript(ctx context.Context, store transcript.Store, sessionID uuid.UUID, want int) error {
	if _, ok := store.(transcript.Nop); ok {
		return nil
	}

	timeout := time.After(TranscriptTimeout)
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		entries, err := store.Load(ctx, sessionID)
		if err == nil && len(entries) >= want {
			if len(entries) > want {
				return fmt.Errorf("expected %d transcript entries, got %d", want, len(entries))
			}
			for i, e := range entries {
				if e.Seq != i {
					return fmt.Errorf("transcript entry %d has seq %d", i, e.Seq)
				}
				if e.SessionID != sessionID {
					return fmt.Errorf("transcript entry %d belongs to session %s", i, e.SessionID)
				}
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			if err != nil {
				return fmt.Errorf("timeout waiting for transcript (waited %v): %w", TranscriptTimeout, err)
			}
			return fmt.Errorf("timeout waiting for transcript (waited %v): have %d of %d entries", TranscriptTimeout, len(entries), want)
		case <-ticker.C:
		}
	}
}
