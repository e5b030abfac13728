// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email trims surrounding space and lowercases an email address. Role
// lookups and admin-list membership compare emails in this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name collapses runs of whitespace and trims the ends.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// List trims every entry and drops the empty ones.
func List(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
