// internal/app/features/merchandise/handler.go
package merchandise

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	merchstore "github.com/dalemusser/clubhub/internal/app/store/merchandise"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const collection = "merchandise"

// Handler serves the merchandise catalog.
type Handler struct {
	Store  *merchstore.Store
	Audit  *auditlog.Logger
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, c *cache.Cache, auditLog *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  merchstore.New(db, c),
		Audit:  auditLog,
		ErrLog: errLog,
		Log:    logger,
	}
}

// List handles GET /api/merchandise?category=&featured=true.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	f := merchstore.Filter{
		Category:     query.Get(r, "category"),
		FeaturedOnly: query.Get(r, "featured") == "true",
	}
	list, err := h.Store.List(ctx, f)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "list merchandise", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, list)
}

// Get handles GET /api/merchandise/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "get merchandise", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, m)
}

// Create handles POST /api/merchandise (admin).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Merchandise
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode merchandise", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.Create(ctx, in)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "create merchandise", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentCreated, collection, m.ID.Hex(), map[string]string{"name": m.Name})
	uierrors.WriteJSON(w, http.StatusCreated, m)
}

// Update handles PUT /api/merchandise/{id} (admin).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var p merchstore.Patch
	if err := uierrors.DecodeJSON(w, r, &p); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode merchandise", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Update(ctx, id, p); err != nil {
		h.ErrLog.WriteStoreError(w, r, "update merchandise", err)
		return
	}
	m, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "reload merchandise", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentUpdated, collection, id, nil)
	uierrors.WriteJSON(w, http.StatusOK, m)
}

// Delete handles DELETE /api/merchandise/{id} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.WriteStoreError(w, r, "delete merchandise", err)
		return
	}
	h.Audit.Admin(ctx, r, audit.EventContentDeleted, collection, id, nil)
	uierrors.WriteSuccess(w)
}
