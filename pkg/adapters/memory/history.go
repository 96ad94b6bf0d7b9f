package memory

import (
	"context"
	"sync"

	"github.com/aretw0/webterm/pkg/domain"
)

// HistoryLog implements ports.HistoryLog in memory.
type HistoryLog struct {
	mu      sync.RWMutex
	entries map[string][]domain.HistoryEntry
}

// NewHistoryLog creates an empty in-memory history log.
func NewHistoryLog() *HistoryLog {
	return &HistoryLog{
		entries: make(map[string][]domain.HistoryEntry),
	}
}

// Append records the entry under the session.
func (l *HistoryLog) Append(ctx context.Context, sessionID string, entry domain.HistoryEntry) error {
	if sessionID == "" {
		return domain.ErrEmptySessionID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[sessionID] = append(l.entries[sessionID], entry)
	return nil
}

// Recent returns the newest limit entries, oldest first.
func (l *HistoryLog) Recent(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	all := l.entries[sessionID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]domain.HistoryEntry, len(all))
	copy(out, all)
	return out, nil
}
