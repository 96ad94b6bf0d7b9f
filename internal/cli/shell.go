package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/webterm"
	"github.com/aretw0/webterm/internal/config"
	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/internal/presentation/tui"
	webhttp "github.com/aretw0/webterm/pkg/adapters/http"
	"github.com/aretw0/webterm/pkg/runner"
	"github.com/aretw0/webterm/pkg/session"
	"golang.org/x/term"
)

// requestTimeout bounds one round trip to the server.
const requestTimeout = 30 * time.Second

// ShellOptions controls RunShell.
type ShellOptions struct {
	In  io.Reader
	Out io.Writer
	// LineMode forces the line front-end even on a TTY.
	LineMode bool
}

// RunShell starts an interactive terminal against cfg.ServerURL. The
// full-screen TUI is used when both ends are a TTY, line mode otherwise.
func RunShell(ctx context.Context, cfg config.Config, opts ShellOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	interactive := !opts.LineMode && isTerminal(opts.In) && isTerminal(opts.Out)

	logger := createLogger(cfg.LogLevel)
	if interactive {
		// Log lines written under the alternate screen would corrupt it.
		logger = logging.NewNop()
	}

	store, err := openClientStore(cfg)
	if err != nil {
		return err
	}
	client := webhttp.NewClient(cfg.ServerURL,
		webhttp.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
		webhttp.WithClientLogger(logger),
	)

	if interactive {
		n := tui.NewNotifier()
		t := webterm.NewTerminal(ctx, client, store,
			webterm.WithLogger(logger),
			webterm.WithVersionSource(client),
			webterm.WithOnChange(n.Notify),
		)
		return tui.Run(ctx, t.Machine, n)
	}

	t := webterm.NewTerminal(ctx, client, store,
		webterm.WithLogger(logger),
		webterm.WithVersionSource(client),
	)
	r := runner.New(t.Machine,
		runner.WithIO(opts.In, opts.Out),
		runner.WithLogger(logger),
		runner.WithRenderer(tui.NewRenderer(80)),
	)
	return r.Run(ctx)
}

// PrintServerHistory writes the history the server recorded for this
// client's session, or for sessionID when given.
func PrintServerHistory(ctx context.Context, cfg config.Config, sessionID string, limit int, w io.Writer) error {
	if sessionID == "" {
		store, err := openClientStore(cfg)
		if err != nil {
			return err
		}
		sessionID = session.NewManager(store).GetOrCreateSessionID(ctx)
	}
	client := webhttp.NewClient(cfg.ServerURL, webhttp.WithHTTPClient(&http.Client{Timeout: requestTimeout}))
	entries, err := client.History(ctx, sessionID, limit)
	if err != nil {
		return fmt.Errorf("fetch history: %w", err)
	}
	if len(entries) == 0 {
		printSystemMessage(w, "No commands recorded for %s.", sessionID)
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s\n", e.Timestamp.Local().Format(time.DateTime), e.Command)
	}
	return nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
