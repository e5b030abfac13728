// internal/app/features/members/create.go
package members

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/members. Admins add approved members
// directly; anyone else submits a profile for approval.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in models.Member
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode member", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if h.isAdmin(r) {
		m, err := h.Store.Create(ctx, in, auth.CurrentEmail(r))
		if err != nil {
			h.ErrLog.WriteStoreError(w, r, "create member", err)
			return
		}
		h.AuditLog.Admin(ctx, r, audit.EventContentCreated, collection, m.ID.Hex(), map[string]string{"name": m.Name})
		uierrors.WriteJSON(w, http.StatusCreated, m)
		return
	}

	m, err := h.Store.Submit(ctx, in)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "submit member", err)
		return
	}
	h.Log.Info("member submitted for approval", zap.String("member_id", m.ID.Hex()))
	uierrors.WriteJSON(w, http.StatusCreated, m)
}
