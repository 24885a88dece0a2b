// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips dangerous markup from user-supplied rich
// text before it is stored. Question text and descriptions may carry
// basic formatting; scripts and event handlers never survive.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// Sanitize returns s with all disallowed HTML removed.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

var strict = bluemonday.StrictPolicy()

// StripTags removes all HTML, leaving plain text. Used for fields that
// must never contain markup, like names and codes.
func StripTags(s string) string {
	return strict.Sanitize(s)
}
