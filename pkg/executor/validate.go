package executor

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/aretw0/webterm/pkg/domain"
)

// MaxLocationLength bounds the weather location parameter.
const MaxLocationLength = 100

const maxHostLength = 253

var (
	locationPattern = regexp.MustCompile(`^[\p{L}\p{Nd} ,\-]+$`)
	hostPattern     = regexp.MustCompile(`^[A-Za-z0-9.\-]+$`)
)

// ValidateCommand enforces the overall command length cap.
func ValidateCommand(cmd string) error {
	if n := utf8.RuneCountInString(cmd); n > domain.MaxCommandLength {
		return domain.NewValidationError(fmt.Sprintf("Command too long (%d characters, maximum %d)", n, domain.MaxCommandLength))
	}
	return nil
}

// ValidateLocation restricts a location to letters, digits, spaces, hyphens and commas.
func ValidateLocation(loc string) error {
	if utf8.RuneCountInString(loc) > MaxLocationLength {
		return domain.NewValidationError(fmt.Sprintf("Location too long (maximum %d characters)", MaxLocationLength))
	}
	if !locationPattern.MatchString(loc) {
		return domain.NewValidationError("Location may only contain letters, numbers, spaces, hyphens and commas")
	}
	return nil
}

func validateHost(host string) error {
	if len(host) > maxHostLength || !hostPattern.MatchString(host) {
		return domain.NewValidationError(fmt.Sprintf("ping: invalid host %q", host))
	}
	return nil
}
