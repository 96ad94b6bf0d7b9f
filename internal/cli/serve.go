package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/webterm"
	"github.com/aretw0/webterm/internal/config"
	"github.com/aretw0/webterm/internal/presentation/tui"
	webhttp "github.com/aretw0/webterm/pkg/adapters/http"
	"github.com/aretw0/webterm/pkg/adapters/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ShutdownTimeout bounds the graceful drain of in-flight requests.
const ShutdownTimeout = 5 * time.Second

// ServeOptions controls RunServer.
type ServeOptions struct {
	Banner io.Writer // nil disables the banner
	// Ready, when set, receives the bound address once the listener is up.
	Ready func(addr string)
}

// RunServer serves the HTTP API until ctx is cancelled, then drains in-flight
// requests for up to ShutdownTimeout.
func RunServer(ctx context.Context, cfg config.Config, opts ServeOptions) error {
	logger := createLogger(cfg.LogLevel)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc, closeSvc, err := newService(ctx, cfg, logger, reg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSvc(); err != nil {
			logger.Warn("Failed to close history store", "err", err)
		}
	}()

	handler := webhttp.NewHandler(svc,
		webhttp.WithLogger(logger),
		webhttp.WithVersion(webterm.Version),
		webhttp.WithDocs(cfg.DocsEnabled),
		webhttp.WithGatherer(reg),
	)

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if opts.Banner != nil {
		tui.PrintBanner(opts.Banner)
	}
	logger.Info("Terminal API listening",
		"address", ln.Addr().String(),
		"version", webterm.Version,
		"store", cfg.Store,
		"sanitize_errors", cfg.SanitizeErrors,
	)
	if opts.Ready != nil {
		opts.Ready(ln.Addr().String())
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			_ = srv.Close()
		}
		logger.Info("Terminal API stopped gracefully")
		return nil
	}
}

// RunMCP exposes the execution service as MCP tools over transport ("stdio" or "sse").
func RunMCP(ctx context.Context, cfg config.Config, transport, addr string) error {
	logger := createLogger(cfg.LogLevel)

	svc, closeSvc, err := newService(ctx, cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer func() { _ = closeSvc() }()

	srv := mcp.NewServer(svc, webterm.Version, mcp.WithLogger(logger))
	switch transport {
	case "stdio":
		logger.Info("Starting webterm MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting webterm MCP Server (SSE)", "address", addr)
		return srv.ServeSSE(ctx, addr, "http://"+hostPort(addr))
	}
	return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
}

// hostPort turns ":8080" into "localhost:8080".
func hostPort(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host != "" {
		return addr
	}
	return net.JoinHostPort("localhost", port)
}
