package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/internal/metrics"
	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/ports"
	"github.com/jellydator/ttlcache/v3"
)

// User-facing messages that never vary with the underlying cause.
// GenericErrorMessage is the default for Config.GenericErrorMessage.
const (
	GenericErrorMessage = "An internal error occurred. Please try again later."
	UpstreamMessage     = "Weather service is unavailable right now. Please try again later."
)

// DefaultProviderTimeout bounds one provider call when Config leaves it unset.
const DefaultProviderTimeout = 5 * time.Second

// Status classifies the outcome of a request for transports.
type Status int

const (
	StatusOK Status = iota
	StatusInvalid
	StatusUpstream
	StatusInternal
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return metrics.ResultInvalid
	case StatusUpstream:
		return metrics.ResultUpstream
	case StatusInternal:
		return metrics.ResultInternal
	}
	return metrics.ResultOK
}

// Config is fixed for the lifetime of a Service.
type Config struct {
	// DefaultLocation is substituted when "weather" is called without a location.
	DefaultLocation string
	// SanitizeErrors replaces internal error detail with the generic message.
	SanitizeErrors bool
	// GenericErrorMessage is shown in place of sanitized errors. Empty means GenericErrorMessage.
	GenericErrorMessage string
	// ProviderTimeout bounds each provider call.
	ProviderTimeout time.Duration
	// CacheTTL keeps provider answers per location. Zero disables the cache.
	CacheTTL time.Duration
}

// Response is the presented result of one request.
type Response struct {
	Result domain.CommandResult
	Status Status
}

// Service is the Remote Execution Service.
type Service struct {
	cfg      Config
	provider ports.Provider
	log      ports.HistoryLog
	metrics  *metrics.Metrics
	logger   *slog.Logger
	cache    *ttlcache.Cache[string, string]
	now      func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithHistoryLog records every executed command in log.
func WithHistoryLog(log ports.HistoryLog) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithClock overrides the time source used to stamp recorded entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service. Call Close to stop the provider cache.
func New(cfg Config, provider ports.Provider, opts ...Option) *Service {
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = DefaultProviderTimeout
	}
	if cfg.GenericErrorMessage == "" {
		cfg.GenericErrorMessage = GenericErrorMessage
	}
	s := &Service{
		cfg:      cfg,
		provider: provider,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.CacheTTL > 0 {
		s.cache = ttlcache.New[string, string](
			ttlcache.WithTTL[string, string](cfg.CacheTTL),
			ttlcache.WithDisableTouchOnHit[string, string](),
		)
		go s.cache.Start()
	}
	return s
}

// Close stops the cache expiration loop.
func (s *Service) Close() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

// Sanitizing reports whether internal error detail is hidden.
func (s *Service) Sanitizing() bool {
	return s.cfg.SanitizeErrors
}

// Execute validates, runs and presents one command, then records it in the history log.
// It never returns a raw error: every failure is folded into the Response.
func (s *Service) Execute(ctx context.Context, req domain.CommandRequest) Response {
	cmd := strings.TrimSpace(req.Command)
	if cmd == "" {
		return Response{Result: domain.Success(""), Status: StatusOK}
	}

	label := "invalid"
	out, err := func() (out string, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("action panicked: %v", r)
			}
		}()
		if err := ValidateCommand(cmd); err != nil {
			return "", err
		}
		r, arg, ok := lookup(cmd)
		if !ok {
			label = "unknown"
			name, _, _ := strings.Cut(cmd, " ")
			return fmt.Sprintf("%s: command not found", name), nil
		}
		label = r.name
		return r.run(s, ctx, arg)
	}()

	resp := s.present(out, err)
	s.metrics.ObserveCommand(label, resp.Status.String())
	s.record(ctx, req.SessionID, cmd, resp.Result)

	if err != nil {
		s.logger.Warn("Command failed",
			"command", label,
			"status", resp.Status.String(),
			"err", err,
		)
	}
	return resp
}

// present maps an action result to what the client is allowed to see.
func (s *Service) present(out string, err error) Response {
	if err == nil {
		return Response{Result: domain.Success(out), Status: StatusOK}
	}
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return Response{Result: domain.Failure(ve.Message), Status: StatusInvalid}
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return Response{Result: domain.Failure(UpstreamMessage), Status: StatusUpstream}
	case s.cfg.SanitizeErrors:
		return Response{Result: domain.Failure(s.cfg.GenericErrorMessage), Status: StatusInternal}
	default:
		return Response{Result: domain.Failure(err.Error()), Status: StatusInternal}
	}
}

func (s *Service) record(ctx context.Context, sessionID, cmd string, res domain.CommandResult) {
	if s.log == nil || sessionID == "" {
		return
	}
	output := ""
	switch {
	case res.Error != nil:
		output = *res.Error
	case res.Output != nil:
		output = *res.Output
	}
	entry := domain.HistoryEntry{Command: cmd, Output: output, Timestamp: s.now().UTC()}
	if err := s.log.Append(ctx, sessionID, entry); err != nil {
		// Losing a log line must never fail the command.
		s.metrics.ObserveAppendError()
		s.logger.Error("Failed to save command history", "session_id", sessionID, "err", err)
	}
}

// History returns the newest limit entries of a session, oldest first.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error) {
	if s.log == nil {
		return []domain.HistoryEntry{}, nil
	}
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	return s.log.Recent(ctx, sessionID, limit)
}

// Usage is returned for "weather" without a location when no default is configured.
const Usage = "Usage: weather [location]\nExample: weather London"

func (s *Service) weather(ctx context.Context, loc string) (string, error) {
	if loc == "" {
		if s.cfg.DefaultLocation == "" {
			return Usage, nil
		}
		loc = s.cfg.DefaultLocation
	}
	if err := ValidateLocation(loc); err != nil {
		return "", err
	}

	key := strings.ToLower(loc)
	start := time.Now()
	if s.cache != nil {
		if item := s.cache.Get(key); item != nil {
			s.metrics.ObserveProvider("weather", true, time.Since(start))
			return item.Value(), nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	defer cancel()

	out, err := s.provider.Lookup(ctx, loc)
	s.metrics.ObserveProvider("weather", false, time.Since(start))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
		}
		return "", err
	}

	out = Normalize(out)
	if s.cache != nil {
		s.cache.Set(key, out, ttlcache.DefaultTTL)
	}
	return out, nil
}
