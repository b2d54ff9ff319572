// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from user-supplied free-text fields
// (plan descriptions, todo notes, goal details, captions) before they
// are persisted.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
