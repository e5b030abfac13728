// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// MaxLimit caps any client-supplied limit.
const MaxLimit = 200

// ParseLimit extracts the "limit" query parameter. Missing or invalid
// values yield def; values above MaxLimit are clamped. 0 means no limit and
// is only returned when def is 0.
func ParseLimit(r *http.Request, def int64) int64 {
	s := query.Get(r, "limit")
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
