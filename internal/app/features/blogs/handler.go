// internal/app/features/blogs/handler.go
package blogs

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	blogstore "github.com/dalemusser/clubhub/internal/app/store/blogs"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/paging"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const collection = "blogs"

// Handler serves the blog API.
type Handler struct {
	Store  *blogstore.Store
	Audit  *auditlog.Logger
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, c *cache.Cache, auditLog *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  blogstore.New(db, c),
		Audit:  auditLog,
		ErrLog: errLog,
		Log:    logger,
	}
}

// List handles GET /api/blogs. An optional tag narrows the result.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Store.List(ctx, query.Get(r, "tag"), paging.ParseLimit(r, 0))
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "list blogs", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, list)
}

// Get handles GET /api/blogs/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	b, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "get blog", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, b)
}

// Create handles POST /api/blogs (admin).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Blog
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode blog", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	b, err := h.Store.Create(ctx, in)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "create blog", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentCreated, collection, b.ID.Hex(), map[string]string{"title": b.Title})
	uierrors.WriteJSON(w, http.StatusCreated, b)
}

// Update handles PUT /api/blogs/{id} (admin). Only fields present in the
// body change.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var p blogstore.Patch
	if err := uierrors.DecodeJSON(w, r, &p); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode blog", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Update(ctx, id, p); err != nil {
		h.ErrLog.WriteStoreError(w, r, "update blog", err)
		return
	}
	b, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "reload blog", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentUpdated, collection, id, nil)
	uierrors.WriteJSON(w, http.StatusOK, b)
}

// Delete handles DELETE /api/blogs/{id} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.WriteStoreError(w, r, "delete blog", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentDeleted, collection, id, nil)
	uierrors.WriteSuccess(w)
}
