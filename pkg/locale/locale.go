// Package locale validates and normalizes locale identifiers. The
// management service and its profiles use the POSIX underscore form
// (de_DE); consumers frequently send BCP 47 hyphenated tags (de-DE).
// Both are accepted and canonicalized to the POSIX form.
package locale

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/installd/switchboard/pkg/errors"
)

// Normalize parses a locale identifier in POSIX or BCP 47 form and returns
// the canonical POSIX underscore form. Identifiers that do not parse as a
// language tag are rejected with a ValidationError.
func Normalize(s string) (string, error) {
	if s == "" {
		return "", errors.NewValidationError("locale", s, "must not be empty")
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return "", errors.NewValidationError("locale", s, "not a valid language tag")
	}

	return strings.ReplaceAll(tag.String(), "-", "_"), nil
}

// Valid reports whether s parses as a locale identifier.
func Valid(s string) bool {
	_, err := Normalize(s)
	return err == nil
}
