package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/ports"
)

// SessionSource yields the client's session.
type SessionSource interface {
	Session(ctx context.Context) domain.Session
}

type handler func(r *Router, ctx context.Context, cmd Command, hist []domain.HistoryEntry) Outcome

var handlers = map[Kind]handler{
	KindHelp:    (*Router).help,
	KindClear:   (*Router).clear,
	KindEcho:    (*Router).echo,
	KindDate:    (*Router).date,
	KindWhoami:  (*Router).whoami,
	KindHistory: (*Router).history,
	KindSession: (*Router).session,
	KindVersion: (*Router).version,
	KindReload:  (*Router).reload,
}

// Router resolves classified commands.
type Router struct {
	executor      ports.Executor
	sessions      SessionSource
	versions      ports.VersionSource
	clientVersion string
	logger        *slog.Logger
	now           func() time.Time

	mu            sync.RWMutex
	serverVersion string
}

// Option configures the Router.
type Option func(*Router)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithVersionSource configures where the server build identity comes from.
func WithVersionSource(src ports.VersionSource) Option {
	return func(r *Router) {
		r.versions = src
	}
}

// WithClientVersion sets the version reported for the client side.
func WithClientVersion(v string) Option {
	return func(r *Router) {
		r.clientVersion = v
	}
}

// WithClock overrides the time source used by "date".
func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		r.now = now
	}
}

// New creates a Router that forwards remote commands to executor.
func New(executor ports.Executor, sessions SessionSource, opts ...Option) *Router {
	r := &Router{
		executor:      executor,
		sessions:      sessions,
		clientVersion: "dev",
		serverVersion: "unknown",
		logger:        logging.NewNop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dispatch classifies and runs line.
func (r *Router) Dispatch(ctx context.Context, line string, hist []domain.HistoryEntry) Outcome {
	return r.Run(ctx, Classify(line), hist)
}

// Run resolves cmd. Local kinds never touch the network.
func (r *Router) Run(ctx context.Context, cmd Command, hist []domain.HistoryEntry) Outcome {
	if fn, ok := handlers[cmd.Kind]; ok {
		return fn(r, ctx, cmd, hist)
	}
	return r.remote(ctx, cmd)
}

// RefreshServerVersion fetches the server version for the "version" command.
// Failures keep the previous value.
func (r *Router) RefreshServerVersion(ctx context.Context) {
	if r.versions == nil {
		return
	}
	v, err := r.versions.Version(ctx)
	if err != nil {
		r.logger.Debug("Server version unavailable", "err", err)
		return
	}
	r.mu.Lock()
	r.serverVersion = v
	r.mu.Unlock()
}

func (r *Router) remote(ctx context.Context, cmd Command) Outcome {
	sid := r.sessions.Session(ctx).ID
	res, err := r.executor.Execute(ctx, domain.CommandRequest{Command: cmd.Line, SessionID: sid})
	if err != nil {
		r.logger.Warn("Remote command failed", "command", cmd.Line, "err", err)
		return Outcome{Output: "Error: " + err.Error()}
	}
	return Outcome{Output: res.Text()}
}

func (r *Router) help(context.Context, Command, []domain.HistoryEntry) Outcome {
	return Outcome{Output: domain.HelpText}
}

func (r *Router) clear(context.Context, Command, []domain.HistoryEntry) Outcome {
	return Outcome{Effect: EffectClear}
}

// reload is a terminal-state transition, not a data transformation.
func (r *Router) reload(context.Context, Command, []domain.HistoryEntry) Outcome {
	return Outcome{Output: "Reloading...", Effect: EffectReload}
}

func (r *Router) echo(_ context.Context, cmd Command, _ []domain.HistoryEntry) Outcome {
	return Outcome{Output: cmd.Arg}
}

func (r *Router) date(context.Context, Command, []domain.HistoryEntry) Outcome {
	return Outcome{Output: r.now().Format(time.UnixDate)}
}

func (r *Router) whoami(context.Context, Command, []domain.HistoryEntry) Outcome {
	return Outcome{Output: "guest"}
}

func (r *Router) history(_ context.Context, _ Command, hist []domain.HistoryEntry) Outcome {
	cmds := domain.Commands(hist)
	if len(cmds) == 0 {
		return Outcome{Output: "No commands in history."}
	}
	var b strings.Builder
	for i, c := range cmds {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%5d  %s", i+1, c)
	}
	return Outcome{Output: b.String()}
}

func (r *Router) session(ctx context.Context, _ Command, _ []domain.HistoryEntry) Outcome {
	s := r.sessions.Session(ctx)
	return Outcome{Output: fmt.Sprintf("Session: %s\nCreated: %s", s.ID, s.CreatedAt.Format(time.RFC3339))}
}

func (r *Router) version(context.Context, Command, []domain.HistoryEntry) Outcome {
	r.mu.RLock()
	server := r.serverVersion
	r.mu.RUnlock()
	return Outcome{Output: fmt.Sprintf("Client: %s\nServer: %s", r.clientVersion, server)}
}
