// Package htmlsanitize cleans user-supplied HTML before it is stored.
package htmlsanitize

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps formatting markup and drops scripts, event handlers and
// unsafe URLs. Used for blog bodies.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// StripAll removes every tag and returns plain text with entities decoded.
// Used for comments and derived excerpts.
func StripAll(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Excerpt returns the first n runes of the plain text of s, with runs of
// whitespace collapsed. An ellipsis is appended when text was cut.
func Excerpt(s string, n int) string {
	plain := strings.Join(strings.Fields(StripAll(s)), " ")
	if n <= 0 || utf8.RuneCountInString(plain) <= n {
		return plain
	}
	r := []rune(plain)
	return strings.TrimSpace(string(r[:n])) + "…"
}
