// internal/app/features/messages/handler.go
package messages

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	messagestore "github.com/dalemusser/clubhub/internal/app/store/messages"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/app/system/paging"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the contact form and its admin inbox.
type Handler struct {
	Store    *messagestore.Store
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: messagestore.New(db), ErrLog: errLog, AuditLog: audit, Log: logger}
}

// Create handles POST /api/messages.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ContactMessage
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode message", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.Create(ctx, in)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "create message", err)
		return
	}
	h.Log.Info("contact message received", zap.String("message_id", m.ID.Hex()))
	uierrors.WriteJSON(w, http.StatusCreated, m)
}

// List handles GET /api/messages (admin).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Store.List(ctx, paging.ParseLimit(r, 0))
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "list messages", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, list)
}

// Delete handles DELETE /api/messages/{id} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.WriteStoreError(w, r, "delete message", err)
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventMessageDeleted, "messages", id, nil)
	uierrors.WriteSuccess(w)
}
