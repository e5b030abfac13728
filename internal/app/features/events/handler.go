// internal/app/features/events/handler.go
package events

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	eventstore "github.com/dalemusser/clubhub/internal/app/store/events"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/paging"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const collection = "events"

// Handler serves the events API.
type Handler struct {
	Store  *eventstore.Store
	Audit  *auditlog.Logger
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, c *cache.Cache, auditLog *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  eventstore.New(db, c),
		Audit:  auditLog,
		ErrLog: errLog,
		Log:    logger,
	}
}

// List handles GET /api/events.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Store.List(ctx, paging.ParseLimit(r, 0))
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "list events", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, list)
}

// Get handles GET /api/events/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "get event", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, e)
}

// Create handles POST /api/events (admin).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Event
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode event", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Store.Create(ctx, in)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "create event", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentCreated, collection, e.ID.Hex(), map[string]string{"title": e.Title})
	uierrors.WriteJSON(w, http.StatusCreated, e)
}

// Update handles PUT /api/events/{id} (admin). Only fields present in the
// body change.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var p eventstore.Patch
	if err := uierrors.DecodeJSON(w, r, &p); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode event", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Update(ctx, id, p); err != nil {
		h.ErrLog.WriteStoreError(w, r, "update event", err)
		return
	}
	e, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "reload event", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentUpdated, collection, id, nil)
	uierrors.WriteJSON(w, http.StatusOK, e)
}

// Delete handles DELETE /api/events/{id} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.WriteStoreError(w, r, "delete event", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentDeleted, collection, id, nil)
	uierrors.WriteSuccess(w)
}
