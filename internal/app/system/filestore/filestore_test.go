package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/filestore"
)

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"Team Photo (1).JPG": "team-photo-1.jpg",
		"../../etc/passwd":   "passwd",
		`C:\Users\me\cv.pdf`: "cv.pdf",
		"...":                "file",
		"résumé final.png":   "r-sum-final.png",
	}
	for in, want := range tests {
		if got := filestore.SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFolder(t *testing.T) {
	if got := filestore.SanitizeFolder(""); got != "uploads" {
		t.Errorf("empty: got %q", got)
	}
	if got := filestore.SanitizeFolder("Events/../x"); strings.Contains(got, "/") || strings.Contains(got, "..") {
		t.Errorf("folder should be a single safe segment, got %q", got)
	}
}

func TestNewKey(t *testing.T) {
	key := filestore.NewKey("events", "Poster.PNG", time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC))
	if !regexp.MustCompile(`^events/2025/03/[0-9a-f]{8}-poster\.png$`).MatchString(key) {
		t.Errorf("unexpected key %q", key)
	}
}

func TestLocal_PutDelete(t *testing.T) {
	root := t.TempDir()
	l, err := filestore.NewLocal(root, "/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	url, err := l.Put(context.Background(), "events/2025/03/abc-poster.png", strings.NewReader("png"), 3, "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "/uploads/events/2025/03/abc-poster.png" {
		t.Errorf("url: got %q", url)
	}
	data, err := os.ReadFile(filepath.Join(root, "events", "2025", "03", "abc-poster.png"))
	if err != nil || string(data) != "png" {
		t.Errorf("stored file: (%q, %v)", data, err)
	}

	if err := l.Delete(context.Background(), "events/2025/03/abc-poster.png"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := l.Delete(context.Background(), "events/2025/03/abc-poster.png"); err != nil {
		t.Errorf("Delete missing should be nil: %v", err)
	}
}

func TestLocal_RejectsEscape(t *testing.T) {
	l, _ := filestore.NewLocal(t.TempDir(), "/uploads")
	if _, err := l.Put(context.Background(), "../outside.txt", strings.NewReader("x"), 1, "text/plain"); err == nil {
		t.Error("expected error for key escaping root")
	}
}
