// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/cart"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/limits"
	"github.com/dalemusser/clubhub/internal/app/system/rolegate"
	"go.uber.org/zap"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = limits.MaxJSONBody

// statusCoder is implemented by errors that know their HTTP status, such as
// validation failures and refused order transitions.
type statusCoder interface {
	HTTPStatus() int
}

// WriteJSON writes v as the response body with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// WriteSuccess writes {"success": true}.
func WriteSuccess(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DecodeJSON reads a JSON body into v. Malformed or oversized bodies come
// back as validation errors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if stderrors.Is(err, io.EOF) {
			return inputval.New("", "request body is empty")
		}
		return inputval.New("", "invalid JSON body: %v", err)
	}
	return nil
}

// ErrorLogger turns store and service errors into JSON responses, logging
// the ones the caller cannot act on.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger returns an ErrorLogger writing to logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// Status returns the HTTP status and client-safe message for err.
func Status(err error) (int, string) {
	var sc statusCoder
	switch {
	case stderrors.As(err, &sc):
		return sc.HTTPStatus(), err.Error()
	case stderrors.Is(err, docstore.ErrNotFound):
		return http.StatusNotFound, "not found"
	case stderrors.Is(err, rolegate.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case stderrors.Is(err, cart.ErrInvalidQuantity):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

// WriteStoreError maps err to a status and writes it. Anything that maps to
// 500 is logged with what the handler was doing.
func (l *ErrorLogger) WriteStoreError(w http.ResponseWriter, r *http.Request, what string, err error) {
	status, msg := Status(err)
	if inputval.IsValidation(err) {
		l.Log.Debug(what, zap.Error(err), zap.String("path", r.URL.Path))
	}
	if status >= http.StatusInternalServerError {
		l.Log.Error(what,
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path))
	}
	WriteError(w, status, msg)
}

// WriteBadRequest writes a 400 with a formatted message.
func WriteBadRequest(w http.ResponseWriter, format string, args ...any) {
	WriteError(w, http.StatusBadRequest, fmt.Sprintf(format, args...))
}
