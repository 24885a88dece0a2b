// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied identifier fields before
// they are validated or stored.
package normalize

import "strings"

// Email trims whitespace and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace; case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role trims and lowercases a role value for comparison against the
// role constants.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Code trims and uppercases a municipality code. Codes are compared
// case-insensitively but stored in canonical upper form.
func Code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
