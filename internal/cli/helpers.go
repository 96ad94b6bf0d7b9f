// Package cli wires configuration, adapters and front-ends into the
// commands of cmd/webterm.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/webterm/internal/logging"
)

// createLogger builds the stderr logger for level. An unparsable level
// falls back to info and says so.
func createLogger(level string) *slog.Logger {
	lvl, err := logging.ParseLevel(level)
	logger := logging.New(lvl)
	if err != nil {
		logger.Warn("Unknown log level, using info", "level", level)
	}
	return logger
}

// printSystemMessage prints a standardized system message to w.
func printSystemMessage(w io.Writer, format string, args ...any) {
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
