package checker

import (
	"strings"
	"unicode"

	"checker/pkg/serrors"
)

const (
	// credentialCookieName is the cookie the credential arrives wrapped in
	// when pasted straight from a browser export.
	credentialCookieName = ".ROBLOSECURITY"

	// credentialPrefix is the structural signature every real credential
	// carries; values without it are rejected before any network call.
	credentialPrefix = "_|WARNING:"

	// minCredentialLength rejects truncated pastes locally.
	minCredentialLength = 100
)

// errEmptyCredential marks inputs with no content left after cleanup. The
// scheduler drops these instead of reporting them as records.
var errEmptyCredential = serrors.With(serrors.ErrInvalidFormat, "empty credential") //nolint: gochecknoglobals

// NormalizeCredential returns the canonical form of a raw credential string.
//
// The cleanup rules are intentionally forgiving about how users paste
// credentials:
//   - Strip surrounding whitespace and quote characters
//   - Remove all internal whitespace and newlines (wrapped pastes)
//   - Extract the value from a full "NAME=value;" cookie line
//
// The resulting value is rejected with an InvalidFormat error when it is
// shorter than the minimum length or missing the provider's prefix
// signature. No network calls happen here.
func NormalizeCredential(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)

	// collapse wrapped pastes: drop every internal whitespace rune
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)

	// full cookie line pasted: keep only the value
	if idx := strings.Index(s, credentialCookieName+"="); idx >= 0 {
		s = s[idx+len(credentialCookieName)+1:]
		if semi := strings.IndexByte(s, ';'); semi >= 0 {
			s = s[:semi]
		}
	}
	s = strings.Trim(s, `"'`)

	if s == "" {
		return "", errEmptyCredential
	}
	if len(s) < minCredentialLength {
		return "", serrors.With(serrors.ErrInvalidFormat, "credential too short (%d chars)", len(s))
	}
	if !strings.HasPrefix(s, credentialPrefix) {
		return "", serrors.With(serrors.ErrInvalidFormat, "credential missing provider signature")
	}

	return s, nil
}
