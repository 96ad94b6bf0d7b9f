package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/webterm/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// HistoryLog implements ports.HistoryLog using one Redis list per session.
// RPUSH is atomic, so concurrent writers sharing a session need no extra locking.
type HistoryLog struct {
	client *backend.Client
	prefix string
}

type Option func(*HistoryLog)

// WithPrefix sets the key prefix for session logs.
func WithPrefix(prefix string) Option {
	return func(l *HistoryLog) {
		l.prefix = prefix
	}
}

// New creates a new Redis history log with options.
func New(address, password string, db int, opts ...Option) *HistoryLog {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis history log from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *HistoryLog {
	l := &HistoryLog{
		client: client,
		prefix: "webterm:history:",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *HistoryLog) key(sessionID string) string {
	return l.prefix + sessionID
}

// Append pushes the JSON-encoded entry to the tail of the session list.
func (l *HistoryLog) Append(ctx context.Context, sessionID string, entry domain.HistoryEntry) error {
	if sessionID == "" {
		return domain.ErrEmptySessionID
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}
	if err := l.client.RPush(ctx, l.key(sessionID), data).Err(); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// Recent reads the last limit elements of the session list.
func (l *HistoryLog) Recent(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	vals, err := l.client.LRange(ctx, l.key(sessionID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history from redis: %w", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(vals))
	for _, v := range vals {
		var e domain.HistoryEntry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Ping checks connectivity.
func (l *HistoryLog) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (l *HistoryLog) Close() error {
	return l.client.Close()
}
