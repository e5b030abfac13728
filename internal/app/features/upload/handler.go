// internal/app/features/upload/handler.go
package upload

import (
	"bufio"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/app/system/filestore"
	"github.com/dalemusser/clubhub/internal/app/system/limits"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const (
	// MaxFileSize caps a single uploaded file.
	MaxFileSize = limits.MaxUploadFile
	// MaxFiles caps the number of files in one request.
	MaxFiles = limits.MaxUploadFiles
)

// Handler stores admin uploads through a filestore backend.
type Handler struct {
	Files    filestore.Store
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Log      *zap.Logger
	now      func() time.Time
}

func NewHandler(files filestore.Store, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Files: files, ErrLog: errLog, AuditLog: audit, Log: logger, now: time.Now}
}

// Result reports the outcome for one file. Exactly one of URL or Error is set.
type Result struct {
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Key         string `json:"key,omitempty"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Error       string `json:"error,omitempty"`
}

type response struct {
	Files    []Result `json:"files"`
	Uploaded int      `json:"uploaded"`
}

var (
	errTooLarge    = errors.New("file exceeds 10 MB")
	errUnsupported = errors.New("only images and PDF files are allowed")
	errEmpty       = errors.New("file is empty")
)

// HandleUpload accepts multipart field "file" (repeatable) and an optional
// "folder" hint. It answers 200 when at least one file was stored and 400
// when none were.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxUploadRequest)
	if err := r.ParseMultipartForm(limits.MaxUploadMemory); err != nil {
		msg := "multipart form with at least one file is required"
		if strings.Contains(err.Error(), "request body too large") {
			msg = "upload is too large"
		}
		uierrors.WriteBadRequest(w, "%s", msg)
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		uierrors.WriteBadRequest(w, "at least one file is required")
		return
	}
	if len(headers) > MaxFiles {
		uierrors.WriteBadRequest(w, "too many files")
		return
	}
	folder := filestore.SanitizeFolder(r.FormValue("folder"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	resp := response{Files: make([]Result, 0, len(headers))}
	var stored []string
	for _, fh := range headers {
		res := h.store(ctx, folder, fh)
		if res.Error == "" {
			resp.Uploaded++
			stored = append(stored, res.Key)
		}
		resp.Files = append(resp.Files, res)
	}

	if resp.Uploaded == 0 {
		uierrors.WriteJSON(w, http.StatusBadRequest, resp)
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventFilesUploaded, "uploads", folder, map[string]string{
		"count": strconv.Itoa(resp.Uploaded),
		"keys":  strings.Join(stored, ","),
	})
	uierrors.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) store(ctx context.Context, folder string, fh *multipart.FileHeader) Result {
	res := Result{Name: fh.Filename}
	switch {
	case fh.Size > MaxFileSize:
		res.Error = errTooLarge.Error()
		return res
	case fh.Size == 0:
		res.Error = errEmpty.Error()
		return res
	}

	f, err := fh.Open()
	if err != nil {
		res.Error = "could not read file"
		return res
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 512)
	head, _ := br.Peek(512)
	ctype, ok := allowedType(head)
	if !ok {
		res.Error = errUnsupported.Error()
		return res
	}

	key := filestore.NewKey(folder, fh.Filename, h.now().UTC())
	url, err := h.Files.Put(ctx, key, br, fh.Size, ctype)
	if err != nil {
		h.Log.Error("store upload failed", zap.String("key", key), zap.Error(err))
		res.Error = "could not store file"
		return res
	}
	res.URL, res.Key, res.Size, res.ContentType = url, key, fh.Size, ctype
	return res
}

// allowedType sniffs head and accepts images and PDF.
func allowedType(head []byte) (string, bool) {
	ctype := http.DetectContentType(head)
	if i := strings.IndexByte(ctype, ';'); i >= 0 {
		ctype = ctype[:i]
	}
	switch {
	case strings.HasPrefix(ctype, "image/"):
		return ctype, true
	case ctype == "application/pdf":
		return ctype, true
	}
	return "", false
}
