// internal/app/features/members/list.go
package members

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /api/members.
//
// The public directory lists approved members only. ?status=all and
// ?status=pending are admin views of the whole collection and the approval
// queue.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	status := query.Get(r, "status")
	if status != "" && status != "approved" {
		if auth.CurrentEmail(r) == "" {
			auth.WriteUnauthorized(w)
			return
		}
		if !h.isAdmin(r) {
			auth.WriteForbidden(w)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var (
		list any
		err  error
	)
	switch status {
	case "", "approved":
		list, err = h.Store.ListApproved(ctx)
	case "pending":
		list, err = h.Store.ListAll(ctx, true)
	case "all":
		list, err = h.Store.ListAll(ctx, false)
	default:
		uierrors.WriteBadRequest(w, "status must be approved, pending, or all")
		return
	}
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "list members", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, list)
}

// ServeGet handles GET /api/members/{id}. Unapproved members are visible
// to admins only.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "get member", err)
		return
	}
	if !m.Approved && !h.isAdmin(r) {
		uierrors.WriteError(w, http.StatusNotFound, "not found")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, m)
}
