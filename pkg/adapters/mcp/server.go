// Package mcp exposes the execution service as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/executor"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Service is the engine behind the tools.
type Service interface {
	Execute(ctx context.Context, req domain.CommandRequest) executor.Response
	History(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error)
}

// ExecuteResult is the structured answer of the execute tool.
type ExecuteResult struct {
	Output string `json:"output" jsonschema_description:"Command output, or the error message when ok is false"`
	OK     bool   `json:"ok" jsonschema_description:"False when the command failed"`
	Status string `json:"status" jsonschema_description:"One of ok, invalid, upstream, internal"`
}

// HistoryResult is the structured answer of the history tool.
type HistoryResult struct {
	History []domain.HistoryEntry `json:"history" jsonschema_description:"Recorded commands, oldest first"`
}

type executeArgs struct {
	Command   string `json:"command"`
	SessionID string `json:"session_id"`
}

type historyArgs struct {
	SessionID string  `json:"session_id"`
	Limit     float64 `json:"limit"`
}

// Server wraps the service as an MCP server.
type Server struct {
	svc       Service
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server reporting version.
func NewServer(svc Service, version string, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		mcpServer: server.NewMCPServer("webterm-mcp", version),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	executeTool := mcp.NewTool("execute",
		mcp.WithDescription("Run one whitelisted terminal command (weather, ping, uptime, uname -a, cat, df -h, free -h, grep, ps aux)."),
		mcp.WithString("command", mcp.Required(), mcp.Description("The command line, at most 500 characters")),
		mcp.WithString("session_id", mcp.Description("Session to record the command under (optional)")),
		mcp.WithOutputSchema[ExecuteResult](),
	)
	s.mcpServer.AddTool(executeTool, mcp.NewStructuredToolHandler(s.handleExecute))

	historyTool := mcp.NewTool("history",
		mcp.WithDescription("List the most recent commands recorded for a session, oldest first."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default 50)")),
		mcp.WithOutputSchema[HistoryResult](),
	)
	s.mcpServer.AddTool(historyTool, mcp.NewStructuredToolHandler(s.handleHistory))
}

func (s *Server) handleExecute(ctx context.Context, _ mcp.CallToolRequest, args executeArgs) (ExecuteResult, error) {
	resp := s.svc.Execute(ctx, domain.CommandRequest{Command: args.Command, SessionID: args.SessionID})
	res := ExecuteResult{OK: resp.Result.Error == nil, Status: resp.Status.String()}
	switch {
	case resp.Result.Error != nil:
		res.Output = *resp.Result.Error
	case resp.Result.Output != nil:
		res.Output = *resp.Result.Output
	}
	return res, nil
}

func (s *Server) handleHistory(ctx context.Context, _ mcp.CallToolRequest, args historyArgs) (HistoryResult, error) {
	if args.SessionID == "" {
		return HistoryResult{}, domain.ErrEmptySessionID
	}
	entries, err := s.svc.History(ctx, args.SessionID, int(args.Limit))
	if err != nil {
		s.logger.Error("MCP History failed", "session_id", args.SessionID, "err", err)
		return HistoryResult{}, fmt.Errorf("history failed: %w", err)
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return HistoryResult{History: entries}, nil
}
