// internal/app/features/projects/handler.go
package projects

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	projectstore "github.com/dalemusser/clubhub/internal/app/store/projects"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/paging"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const collection = "projects"

// Handler serves the project API.
type Handler struct {
	Store  *projectstore.Store
	Audit  *auditlog.Logger
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, c *cache.Cache, auditLog *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  projectstore.New(db, c),
		Audit:  auditLog,
		ErrLog: errLog,
		Log:    logger,
	}
}

// List handles GET /api/projects.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Store.List(ctx, paging.ParseLimit(r, 0))
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "list projects", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, list)
}

// Get handles GET /api/projects/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "get project", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, p)
}

// Create handles POST /api/projects (admin).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Project
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode project", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.Create(ctx, in)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "create project", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentCreated, collection, p.ID.Hex(), map[string]string{"title": p.Title})
	uierrors.WriteJSON(w, http.StatusCreated, p)
}

// Update handles PUT /api/projects/{id} (admin). Only fields present in the
// body change.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch projectstore.Patch
	if err := uierrors.DecodeJSON(w, r, &patch); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode project", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Update(ctx, id, patch); err != nil {
		h.ErrLog.WriteStoreError(w, r, "update project", err)
		return
	}
	p, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "reload project", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentUpdated, collection, id, nil)
	uierrors.WriteJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/projects/{id} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.WriteStoreError(w, r, "delete project", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentDeleted, collection, id, nil)
	uierrors.WriteSuccess(w)
}
