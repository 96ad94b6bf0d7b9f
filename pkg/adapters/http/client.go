package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/pkg/domain"
)

// Client talks to a webterm server. It implements ports.Executor and ports.VersionSource.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithClientLogger configures the structured logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wireResult accepts both {"output","error"} and {"detail"} bodies.
type wireResult struct {
	Output *string `json:"output"`
	Error  *string `json:"error"`
	Detail *string `json:"detail"`
}

// Execute posts req to /api/execute.
// A transport failure is returned as an error; any HTTP answer becomes a CommandResult.
func (c *Client) Execute(ctx context.Context, req domain.CommandRequest) (domain.CommandResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return domain.CommandResult{}, fmt.Errorf("encode request: %w", err)
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/execute", bytes.NewReader(payload))
	if err != nil {
		return domain.CommandResult{}, fmt.Errorf("build request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(hreq)
	if err != nil {
		return domain.CommandResult{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.CommandResult{}, err
	}

	var wr wireResult
	decodeErr := json.Unmarshal(body, &wr)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		switch {
		case decodeErr == nil && wr.Error != nil:
			return domain.Failure(*wr.Error), nil
		case decodeErr == nil && wr.Detail != nil:
			return domain.Failure(*wr.Detail), nil
		}
		c.logger.Debug("Non-JSON error body", "status", resp.StatusCode)
		return domain.Failure("HTTP " + strconv.Itoa(resp.StatusCode)), nil
	}

	if decodeErr != nil {
		return domain.CommandResult{}, fmt.Errorf("decode response: %w", decodeErr)
	}
	if wr.Error != nil {
		return domain.Failure(*wr.Error), nil
	}
	if wr.Output != nil {
		return domain.Success(*wr.Output), nil
	}
	return domain.Success(""), nil
}

// Version fetches the server version from /api/version.
func (c *Client) Version(ctx context.Context) (string, error) {
	var v versionResponse
	if err := c.getJSON(ctx, "/api/version", &v); err != nil {
		return "", err
	}
	return v.Version, nil
}

// History fetches the newest limit entries recorded for sessionID, oldest first.
func (c *Client) History(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error) {
	q := url.Values{"session_id": {sessionID}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var h historyResponse
	if err := c.getJSON(ctx, "/api/history?"+q.Encode(), &h); err != nil {
		return nil, err
	}
	return h.History, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
