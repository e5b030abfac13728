// internal/app/features/roles/handler.go
package roles

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/rolegate"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves owner and admin management.
type Handler struct {
	Gate     *rolegate.Gate
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(gate *rolegate.Gate, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Gate: gate, ErrLog: errLog, AuditLog: audit, Log: logger}
}

type rolesResponse struct {
	Initialized bool        `json:"initialized"`
	Role        models.Role `json:"role"`
	Owner       string      `json:"owner,omitempty"`
	Admins      []string    `json:"admins,omitempty"`
}

// Show handles GET /api/roles. Everyone learns their own role and whether
// an owner exists; admins also see the owner and the admin list.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	email := auth.CurrentEmail(r)
	resp := rolesResponse{Role: h.Gate.Resolve(ctx, email)}

	snap, err := h.Gate.Snapshot(ctx)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
	case err != nil:
		h.ErrLog.WriteStoreError(w, r, "load roles", err)
		return
	default:
		resp.Initialized = true
		if resp.Role.AtLeast(models.RoleAdmin) {
			resp.Owner = snap.Owner
			resp.Admins = snap.Admins
		}
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}

// Init handles POST /api/roles/init. The signed-in caller becomes owner
// when no owner exists yet.
func (h *Handler) Init(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	email := auth.CurrentEmail(r)
	created, err := h.Gate.InitializeOwner(ctx, email)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "initialize owner", err)
		return
	}
	if created {
		h.AuditLog.Admin(ctx, r, audit.EventOwnerInitialized, "roles", email, nil)
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"created": created,
		"role":    h.Gate.Resolve(ctx, email),
	})
}

type adminRequest struct {
	Email string `json:"email"`
}

// AddAdmin handles POST /api/roles/admins (owner).
func (h *Handler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	var in adminRequest
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode admin", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Gate.AddAdmin(ctx, auth.CurrentEmail(r), in.Email); err != nil {
		h.ErrLog.WriteStoreError(w, r, "add admin", err)
		return
	}
	h.AuditLog.AdminListChanged(ctx, r, audit.EventAdminAdded, in.Email)
	uierrors.WriteSuccess(w)
}

// RemoveAdmin handles DELETE /api/roles/admins/{email} (owner).
func (h *Handler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		uierrors.WriteBadRequest(w, "malformed email")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Gate.RemoveAdmin(ctx, auth.CurrentEmail(r), email); err != nil {
		h.ErrLog.WriteStoreError(w, r, "remove admin", err)
		return
	}
	h.AuditLog.AdminListChanged(ctx, r, audit.EventAdminRemoved, email)
	uierrors.WriteSuccess(w)
}
