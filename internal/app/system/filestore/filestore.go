// Package filestore stores uploaded files and returns their public URLs.
// Two backends exist: Local writes under a directory served at a URL
// prefix; S3 puts objects in a bucket fronted by a public base URL.
package filestore

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store persists an object under key and returns its public URL.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

var (
	unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)
	folderChars = regexp.MustCompile(`[^a-z0-9_-]+`)
	dashes      = regexp.MustCompile(`-{2,}`)
)

// SanitizeName lowercases name, replaces anything outside [a-z0-9._-] with
// a dash, and keeps at most 80 characters of the base (the extension is
// preserved).
func SanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(path.Ext(name))
	base := strings.ToLower(strings.TrimSuffix(name, path.Ext(name)))
	base = dashes.ReplaceAllString(unsafeChars.ReplaceAllString(base, "-"), "-")
	base = strings.Trim(base, "-.")
	if base == "" {
		base = "file"
	}
	if len(base) > 80 {
		base = base[:80]
	}
	ext = unsafeChars.ReplaceAllString(ext, "")
	if ext == "." {
		ext = ""
	}
	return base + ext
}

// SanitizeFolder keeps a folder hint to one safe path segment, defaulting
// to "uploads".
func SanitizeFolder(folder string) string {
	f := folderChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(folder)), "-")
	f = strings.Trim(dashes.ReplaceAllString(f, "-"), "-")
	if f == "" {
		return "uploads"
	}
	return f
}

// NewKey builds <folder>/YYYY/MM/<uuid8>-<name> for an upload at t.
func NewKey(folder, name string, t time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%04d/%02d/%s-%s", SanitizeFolder(folder), t.Year(), int(t.Month()), id, SanitizeName(name))
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
