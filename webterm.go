package webterm

import (
	"context"
	"log/slog"

	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/pkg/history"
	"github.com/aretw0/webterm/pkg/ports"
	"github.com/aretw0/webterm/pkg/router"
	"github.com/aretw0/webterm/pkg/session"
	"github.com/aretw0/webterm/pkg/terminal"
)

// Terminal is the assembled client side of one browser-like session.
type Terminal struct {
	Machine  *terminal.Machine
	Router   *router.Router
	Sessions *session.Manager
	Cache    *history.Cache
}

// Option configures NewTerminal.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	onChange func()
	versions ports.VersionSource
}

// WithLogger configures the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOnChange is called after every change a front-end must re-render.
func WithOnChange(fn func()) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

// WithVersionSource lets the version command report the server version.
func WithVersionSource(src ports.VersionSource) Option {
	return func(o *options) {
		o.versions = src
	}
}

// NewTerminal restores the session and history persisted in store and wires
// the router and machine on top of exec.
func NewTerminal(ctx context.Context, exec ports.Executor, store ports.ClientStore, opts ...Option) *Terminal {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	sessions := session.NewManager(store, session.WithLogger(o.logger))
	sessions.GetOrCreateSessionID(ctx)

	cache := history.NewCache(store, history.WithLogger(o.logger))
	cache.Load(ctx)

	routerOpts := []router.Option{
		router.WithLogger(o.logger),
		router.WithClientVersion(Version),
	}
	if o.versions != nil {
		routerOpts = append(routerOpts, router.WithVersionSource(o.versions))
	}
	r := router.New(exec, sessions, routerOpts...)
	r.RefreshServerVersion(ctx)

	m := terminal.New(cache, r,
		terminal.WithLogger(o.logger),
		terminal.WithOnChange(o.onChange),
	)

	return &Terminal{Machine: m, Router: r, Sessions: sessions, Cache: cache}
}
