// internal/app/features/members/viewedit.go
package members

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// HandleEdit handles PUT /api/members/{id} (admin).
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	var p memberstore.Patch
	if err := uierrors.DecodeJSON(w, r, &p); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode member", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Update(ctx, id, p); err != nil {
		h.ErrLog.WriteStoreError(w, r, "update member", err)
		return
	}
	m, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "reload member", err)
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventContentUpdated, collection, id, nil)
	uierrors.WriteJSON(w, http.StatusOK, m)
}

// HandleDelete handles DELETE /api/members/{id} (admin).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.WriteStoreError(w, r, "delete member", err)
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventContentDeleted, collection, id, nil)
	uierrors.WriteSuccess(w)
}

// HandleApprove handles POST /api/members/{id}/approve (admin).
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Approve(ctx, id, auth.CurrentEmail(r)); err != nil {
		h.ErrLog.WriteStoreError(w, r, "approve member", err)
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventMemberApproved, collection, id, nil)
	uierrors.WriteSuccess(w)
}

// HandleAwardBadge handles POST /api/members/{id}/badges (admin).
func (h *Handler) HandleAwardBadge(w http.ResponseWriter, r *http.Request) {
	var b models.Badge
	if err := uierrors.DecodeJSON(w, r, &b); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode badge", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	b, err := h.Store.AwardBadge(ctx, id, b, auth.CurrentEmail(r))
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "award badge", err)
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventBadgeAwarded, collection, id, map[string]string{"badge": b.Name})
	uierrors.WriteJSON(w, http.StatusCreated, b)
}
