package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/dungeon/pkg/session"
)

const keyPrefix = "transcript:"

// Redis keeps each session's transcript as a list of JSON entries.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ Store = (*Redis)(nil)

// NewRedis connects to redisURL. A positive ttl makes each transcript expire
// that long after its latest entry.
func NewRedis(ctx context.Context, redisURL string, ttl time.Duration, logger *slog.Logger) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Connected to Redis for transcripts", "addr", opt.Addr)

	return &Redis{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func transcriptKey(sessionID uuid.UUID) string {
	return keyPrefix + sessionID.String()
}

// Record appends e to its session's list.
func (r *Redis) Record(ctx context.Context, e session.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	key := transcriptKey(e.SessionID)
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Redis RPUSH failed", "key", key, "error", err)
		return fmt.Errorf("failed to record entry: %w", err)
	}

	r.logger.Debug("Recorded transcript entry", "key", key, "seq", e.Seq)
	return nil
}

// Load returns a session's entries in the order they were recorded.
func (r *Redis) Load(ctx context.Context, sessionID uuid.UUID) ([]session.Entry, error) {
	key := transcriptKey(sessionID)
	items, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	entries := make([]session.Entry, 0, len(items))
	for _, item := range items {
		var e session.Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	return r.rdb.Close()
}
