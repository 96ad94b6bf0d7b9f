// Package weather implements ports.Provider against a wttr.in compatible endpoint.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/pkg/domain"
)

// DefaultURL is the public endpoint used when none is configured.
const DefaultURL = "https://wttr.in"

// DefaultFormat asks for a single line: location, condition, temperature and wind.
const DefaultFormat = "%l: %c %t %w"

// maxBody caps how much of a provider answer is read.
const maxBody = 64 << 10

// Provider looks up current conditions over HTTP.
type Provider struct {
	baseURL string
	format  string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures the Provider.
type Option func(*Provider)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithHTTPClient replaces the default client. Timeouts come from the caller's context.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		p.client = c
	}
}

// WithFormat overrides the wttr.in format string.
func WithFormat(format string) Option {
	return func(p *Provider) {
		p.format = format
	}
}

// New creates a Provider for baseURL. An empty baseURL selects DefaultURL.
func New(baseURL string, opts ...Option) *Provider {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	p := &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		format:  DefaultFormat,
		client:  http.DefaultClient,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Lookup fetches the conditions for location.
// Transport failures and timeouts wrap domain.ErrUpstreamUnavailable.
func (p *Provider) Lookup(ctx context.Context, location string) (string, error) {
	u := p.baseURL + "/" + url.PathEscape(location) + "?" + url.Values{"format": {p.format}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build weather request: %w", err)
	}
	req.Header.Set("User-Agent", "curl/8.0")
	req.Header.Set("Accept", "text/plain")

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("Weather provider unreachable", "location", location, "err", err)
		return "", fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
		}
		return "", fmt.Errorf("read weather response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Sprintf("Unknown location: %s", location), nil
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("unexpected weather status %d", resp.StatusCode)
	}

	return strings.TrimSpace(string(body)), nil
}
