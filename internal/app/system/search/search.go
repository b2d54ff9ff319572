// internal/app/system/search/search.go

// Package search builds the permissive Mongo $regex patterns used by
// catalog filtering. The product's match policy tolerates arbitrary
// whitespace between the characters of the search term and ignores case,
// so searching "legday" matches a plan named "Leg Day".
package search

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pattern returns the regex source for a search term under the
// whitespace-insensitive policy: each character of the trimmed term is
// escaped and separated by \s*. An empty term yields an empty pattern.
func Pattern(term string) string {
	term = strings.Join(strings.Fields(term), "")
	if term == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range term {
		if i > 0 {
			b.WriteString(`\s*`)
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	return b.String()
}

// Regex wraps Pattern in a case-insensitive primitive.Regex for use in a
// bson filter. Returns ok=false when the term is empty.
func Regex(term string) (primitive.Regex, bool) {
	p := Pattern(term)
	if p == "" {
		return primitive.Regex{}, false
	}
	return primitive.Regex{Pattern: p, Options: "i"}, true
}
