package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/ports"
	"github.com/google/uuid"
)

const idPrefix = "session_"

// Manager creates or reuses the client's session id.
type Manager struct {
	store  ports.ClientStore
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	current *domain.Session
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock overrides the time source used when generating ids.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new Session Manager backed by the given client store.
func NewManager(store ports.ClientStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetOrCreateSessionID returns the persisted id, generating and persisting one on first use.
// It never fails: storage errors are logged and the id is kept in memory only.
func (m *Manager) GetOrCreateSessionID(ctx context.Context) string {
	return m.Session(ctx).ID
}

// Session returns the current session, resolving it on first call.
func (m *Manager) Session(ctx context.Context) domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return *m.current
	}

	if id, ok := m.load(ctx); ok {
		m.current = &domain.Session{ID: id, CreatedAt: createdAt(id, m.now())}
		return *m.current
	}

	now := m.now()
	s := domain.Session{ID: NewID(now), CreatedAt: now}
	if err := m.store.Write(ctx, domain.KeySessionID, []byte(s.ID)); err != nil {
		m.logger.Warn("Failed to persist session id, continuing unpersisted",
			"session_id", s.ID,
			"err", err,
		)
	}
	m.current = &s
	return s
}

func (m *Manager) load(ctx context.Context) (string, bool) {
	data, err := m.store.Read(ctx, domain.KeySessionID)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			m.logger.Warn("Failed to read session id", "err", err)
		}
		return "", false
	}
	id := strings.TrimSpace(string(data))
	return id, id != ""
}

// NewID generates a token of the form session_<unix-millis>_<random>.
func NewID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s%d_%s", idPrefix, now.UnixMilli(), random)
}

// createdAt recovers the creation time embedded in id, or returns fallback
// for tokens that were not generated by NewID.
func createdAt(id string, fallback time.Time) time.Time {
	rest, ok := strings.CutPrefix(id, idPrefix)
	if !ok {
		return fallback
	}
	millis, _, _ := strings.Cut(rest, "_")
	ms, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return fallback
	}
	return time.UnixMilli(ms)
}
