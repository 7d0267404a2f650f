package identity

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/gim/pkg/errors"
)

var (
	aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// Loose on purpose: something@domain.tld with no whitespace
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateAlias checks the alias character class. Aliases become file names
// and SSH host aliases, so nothing outside [A-Za-z0-9_-] is accepted.
func ValidateAlias(alias string) error {
	if !aliasPattern.MatchString(alias) {
		return errors.Newf(errors.ErrInvalidAlias,
			"invalid alias %q: use only letters, digits, '_' and '-'", alias).
			WithDetail("alias", alias)
	}
	return nil
}

// ValidateEmail requires an '@' and a dot in the domain part
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return errors.Newf(errors.ErrInvalidEmail, "invalid email address %q", email).
			WithDetail("email", email)
	}
	return nil
}

// ValidateName rejects blank display names
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrInvalidInput, "display name must not be empty")
	}
	return nil
}
