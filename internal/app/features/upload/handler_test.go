package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/system/filestore"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

type part struct {
	name string
	data []byte
}

func multipartRequest(t *testing.T, folder string, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if folder != "" {
		if err := mw.WriteField("folder", folder); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range parts {
		fw, err := mw.CreateFormFile("file", p.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(p.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestHandler(t *testing.T) (*Handler, string) {
	t.Helper()
	root := t.TempDir()
	files, err := filestore.NewLocal(root, "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	logger := zap.NewNop()
	h := NewHandler(files, uierrors.NewErrorLogger(logger), nil, logger)
	h.now = func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }
	return h, root
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestHandleUpload_PartialFailure(t *testing.T) {
	h, root := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, multipartRequest(t, "Events",
		part{"Poster.PNG", pngHeader},
		part{"notes.txt", []byte("just some text")},
	))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	if resp.Uploaded != 1 || len(resp.Files) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
	ok, bad := resp.Files[0], resp.Files[1]
	if !strings.HasPrefix(ok.Key, "events/2025/05/") || !strings.HasSuffix(ok.Key, "-poster.png") {
		t.Errorf("key = %q", ok.Key)
	}
	if ok.URL != "/uploads/"+ok.Key || ok.ContentType != "image/png" {
		t.Errorf("stored result = %+v", ok)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(ok.Key))); err != nil {
		t.Errorf("file not written: %v", err)
	}
	if bad.Error == "" || bad.URL != "" {
		t.Errorf("text file should be rejected: %+v", bad)
	}
}

func TestHandleUpload_NothingStored(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, multipartRequest(t, "", part{"a.txt", []byte("plain")}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decode(t, rec); resp.Uploaded != 0 || len(resp.Files) != 1 || resp.Files[0].Error == "" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHandleUpload_NoFiles(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, multipartRequest(t, "x"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleUpload_NotMultipart(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"file":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	h.HandleUpload(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if body["error"] != "multipart form with at least one file is required" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestHandleUpload_OversizeFile(t *testing.T) {
	h, _ := newTestHandler(t)
	big := append(append([]byte{}, pngHeader...), make([]byte, MaxFileSize)...)
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, multipartRequest(t, "", part{"big.png", big}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decode(t, rec); resp.Files[0].Error != errTooLarge.Error() {
		t.Errorf("error = %q", resp.Files[0].Error)
	}
}

func TestAllowedType(t *testing.T) {
	if ct, ok := allowedType([]byte("%PDF-1.7\n")); !ok || ct != "application/pdf" {
		t.Errorf("pdf: %q %v", ct, ok)
	}
	if _, ok := allowedType([]byte("<html><body>x</body></html>")); ok {
		t.Error("html should be rejected")
	}
}
