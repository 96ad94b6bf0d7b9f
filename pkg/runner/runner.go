package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/terminal"
	"github.com/muesli/termenv"
)

// DefaultPrompt is shown before every line.
const DefaultPrompt = "guest@webterm:~$ "

// DefaultWelcome is printed once when the loop starts.
const DefaultWelcome = "# webterm\n\nType `help` for the list of commands. Press Ctrl+D to leave."

// Runner is the line-mode front-end.
type Runner struct {
	machine  *terminal.Machine
	in       io.Reader
	out      io.Writer
	renderer ContentRenderer
	welcome  string
	prompt   string
	logger   *slog.Logger

	term    *termenv.Output
	printed int
}

// New creates a Runner for m reading stdin and writing stdout.
func New(m *terminal.Machine, opts ...Option) *Runner {
	r := &Runner{
		machine: m,
		in:      os.Stdin,
		out:     os.Stdout,
		welcome: DefaultWelcome,
		prompt:  DefaultPrompt,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.term = termenv.NewOutput(r.out)
	return r
}

// Run reads and submits lines until end of input or ctx is cancelled.
// End of input is a normal exit and returns nil.
func (r *Runner) Run(ctx context.Context) error {
	lines := newLineReader(r.in)
	defer lines.close()

	r.printWelcome()
	// Entries restored from a previous session are shown once.
	r.flush()

	for {
		fmt.Fprint(r.out, r.term.String(r.prompt).Foreground(r.term.Color("#22c55e")).Bold())

		line, err := lines.next(ctx)
		if err != nil {
			fmt.Fprintln(r.out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		select {
		case <-r.machine.Submit(ctx, line):
		case <-ctx.Done():
			return ctx.Err()
		}

		if r.machine.Mode() == terminal.ModeReloading {
			r.logger.Debug("Reloading terminal state")
			r.machine.Reload(ctx)
			r.term.ClearScreen()
			r.printed = 0
			r.printWelcome()
		}
		r.flush()
	}
}

func (r *Runner) printWelcome() {
	if r.welcome == "" {
		return
	}
	text := r.welcome
	if r.renderer != nil {
		if rendered, err := r.renderer(text); err == nil {
			text = rendered
		} else {
			r.logger.Debug("Welcome render failed", "err", err)
		}
	}
	fmt.Fprintln(r.out, strings.TrimSpace(text))
}

// flush prints the entries appended since the last call. A shrunken history
// means the clear command ran, so the screen is cleared too.
func (r *Runner) flush() {
	entries := r.machine.History()
	if len(entries) < r.printed {
		r.term.ClearScreen()
		r.printed = 0
	}
	for _, e := range entries[r.printed:] {
		r.print(e)
	}
	r.printed = len(entries)
}

func (r *Runner) print(e domain.HistoryEntry) {
	if e.Output == "" {
		return
	}
	if strings.HasPrefix(e.Output, "Error: ") {
		fmt.Fprintln(r.out, r.term.String(e.Output).Foreground(r.term.Color("#ef4444")))
		return
	}
	fmt.Fprintln(r.out, e.Output)
}
