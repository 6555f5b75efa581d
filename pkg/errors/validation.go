package errors

import (
	"strings"
	"unicode"
)

// ValidateLabel validates a node label arriving from an untrusted boundary
// (API request, CLI flag). The store itself is permissive; this is the
// gatekeeper callers run before CreateNode or label edits.
//
// The rules are intentionally conservative:
//   - No empty labels
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}

	if len(label) > 256 {
		return New(ErrCodeInvalidLabel, "label too long (max 256 characters)")
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid control characters")
		}
	}

	return nil
}

// RoundTrippableLabel reports whether the label survives a bracket-notation
// round trip. Labels containing brackets or whitespace serialize fine but
// do not parse back to the same structure - the format has no escaping
// mechanism, so boundaries that promise round-trip fidelity should warn.
func RoundTrippableLabel(label string) bool {
	return !strings.ContainsAny(label, "[]") &&
		strings.IndexFunc(label, unicode.IsSpace) < 0
}
