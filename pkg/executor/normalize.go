package executor

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Normalize strips terminal escape sequences and stray control characters
// from provider output. Newlines and tabs survive.
func Normalize(s string) string {
	s = ansi.Strip(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.TrimRight(s, " \t\n")
}
