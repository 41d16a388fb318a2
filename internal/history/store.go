package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisRecentKeyPrefix = "room:"
	redisRecentKeySuffix = ":recent"

	// recentTTL keeps the per-room cache from outliving dead rooms forever.
	recentTTL = 24 * time.Hour
)

// Store is the async append/fetch pair the chat core persists through.
// Appends are issued fire-and-forget by the caller; Fetch returns at most
// the configured window of lines, oldest first.
type Store interface {
	Append(ctx context.Context, roomID, text string) error
	Fetch(ctx context.Context, roomID string) ([]string, error)
}

type store struct {
	rdc    *redis.Client
	db     *sql.DB
	window int
}

func NewStore(rdc *redis.Client, db *sql.DB, window int) Store {
	return &store{
		rdc:    rdc,
		db:     db,
		window: window,
	}
}

func recentKey(roomID string) string {
	return redisRecentKeyPrefix + roomID + redisRecentKeySuffix
}

// Append records the line in Postgres and mirrors it into the capped
// per-room Redis list. The list is trimmed to the window so the fast path
// always holds the most recent lines.
func (s *store) Append(ctx context.Context, roomID, text string) error {
	const ins = `INSERT INTO messages (room_id, msg) VALUES ($1, $2)`
	if _, err := s.db.ExecContext(ctx, ins, roomID, text); err != nil {
		return err
	}

	// Cache maintenance is best-effort; the durable row already exists.
	key := recentKey(roomID)
	pipe := s.rdc.TxPipeline()
	pipe.RPush(ctx, key, text)
	pipe.LTrim(ctx, key, int64(-s.window), -1)
	pipe.Expire(ctx, key, recentTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		zap.L().Warn("history.cache_push", zap.String("room_id", roomID), zap.Error(err))
	}
	return nil
}

// Fetch serves from the Redis list when it holds a full window, otherwise
// falls back to Postgres. Either way the result is the most recent lines,
// oldest first.
func (s *store) Fetch(ctx context.Context, roomID string) ([]string, error) {
	lines, err := s.rdc.LRange(ctx, recentKey(roomID), 0, -1).Result()
	if err != nil {
		zap.L().Debug("history.cache_read", zap.String("room_id", roomID), zap.Error(err))
	} else if len(lines) >= s.window {
		return lines, nil
	}

	// A short (or missing) list cannot tell "few messages ever" from
	// "cache evicted", so anything below a full window goes to Postgres.
	const q = `SELECT msg FROM (
	             SELECT id, msg FROM messages
	              WHERE room_id = $1
	              ORDER BY id DESC
	              LIMIT $2
	           ) recent ORDER BY id ASC`
	rows, err := s.db.QueryContext(ctx, q, roomID, s.window)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, s.window)
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}
