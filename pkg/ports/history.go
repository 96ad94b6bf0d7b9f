package ports

import (
	"context"

	"github.com/aretw0/webterm/pkg/domain"
)

// HistoryLog is the server-side, authoritative append-only command log.
type HistoryLog interface {
	// Append atomically records one entry for the session.
	Append(ctx context.Context, sessionID string, entry domain.HistoryEntry) error

	// Recent returns the newest limit entries of the session in chronological (oldest-first) order.
	// An unknown session yields an empty slice.
	Recent(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error)
}
