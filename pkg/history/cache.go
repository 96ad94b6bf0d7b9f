package history

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/ports"
)

// Cache is the client-side ordered history.
type Cache struct {
	store  ports.ClientStore
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

// Option configures the Cache.
type Option func(*Cache)

// WithLogger configures a logger for persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithClock overrides the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates an empty cache persisted to store. Call Load to restore a previous run.
func NewCache(store ports.ClientStore, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the in-memory entries with the persisted ones.
// Missing or corrupt data leaves the cache empty.
func (c *Cache) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	data, err := c.store.Read(ctx, domain.KeyHistory)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			c.logger.Warn("Failed to read history cache", "err", err)
		}
		return
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("Discarding corrupt history cache", "err", err, "size", len(data))
		return
	}
	c.entries = entries
}

// Append stamps the entry, adds it to the end and persists the whole list.
// Timestamps never go backwards: an entry older than the last one is
// stamped with the last entry's time.
func (c *Cache) Append(ctx context.Context, entry domain.HistoryEntry) domain.HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = c.now()
	}
	if n := len(c.entries); n > 0 && entry.Timestamp.Before(c.entries[n-1].Timestamp) {
		entry.Timestamp = c.entries[n-1].Timestamp
	}
	c.entries = append(c.entries, entry)
	c.persist(ctx)
	return entry
}

// Clear discards all entries, in memory and in the store.
func (c *Cache) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	if err := c.store.Clear(ctx, domain.KeyHistory); err != nil {
		c.logger.Warn("Failed to clear history cache", "err", err)
	}
}

// Entries returns a copy of all entries, oldest first.
func (c *Cache) Entries() []domain.HistoryEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.HistoryEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// persist must be called with c.mu held.
func (c *Cache) persist(ctx context.Context) {
	data, err := json.Marshal(c.entries)
	if err != nil {
		c.logger.Error("Failed to encode history cache", "err", err)
		return
	}
	if err := c.store.Write(ctx, domain.KeyHistory, data); err != nil {
		c.logger.Warn("Failed to persist history cache", "err", err, "entries", len(c.entries))
	}
}
