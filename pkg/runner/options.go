package runner

import (
	"io"
	"log/slog"
)

// ContentRenderer transforms markdown before it is written, e.g. into ANSI.
type ContentRenderer func(string) (string, error)

// Option configures a Runner.
type Option func(*Runner)

// WithIO sets the input and output streams. Nil values keep stdin/stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *Runner) {
		if in != nil {
			r.in = in
		}
		if out != nil {
			r.out = out
		}
	}
}

// WithRenderer renders the welcome message through fn.
func WithRenderer(fn ContentRenderer) Option {
	return func(r *Runner) {
		r.renderer = fn
	}
}

// WithWelcome replaces the markdown printed before the first prompt.
// An empty string disables it.
func WithWelcome(md string) Option {
	return func(r *Runner) {
		r.welcome = md
	}
}

// WithPrompt replaces the default prompt.
func WithPrompt(p string) Option {
	return func(r *Runner) {
		r.prompt = p
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}
