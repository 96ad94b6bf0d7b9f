package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the webterm ASCII banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"                 _     _                     ", "#34d399"},
		{" __      __ ___ | |__ | |_  ___  _ __  _ __ ", "#2dd4bf"},
		{" \\ \\ /\\ / // _ \\| '_ \\| __|/ _ \\| '__|| '  \\", "#22d3ee"},
		{"  \\ V  V /|  __/| |_) | |_|  __/| |   | | | |", "#38bdf8"},
		{"   \\_/\\_/  \\___||_.__/ \\__|\\___||_|   |_|_|_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
