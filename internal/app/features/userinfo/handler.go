// internal/app/features/userinfo/handler.go
package userinfo

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/rolegate"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
)

// Handler serves the current principal and its role.
type Handler struct {
	Gate *rolegate.Gate
}

// NewHandler creates a new userinfo handler.
func NewHandler(gate *rolegate.Gate) *Handler {
	return &Handler{Gate: gate}
}

type meResponse struct {
	IsAuthenticated bool        `json:"isAuthenticated"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	Picture         string      `json:"picture,omitempty"`
	Source          string      `json:"source,omitempty"`
	Role            models.Role `json:"role"`
}

// ServeUserInfo returns the caller's authentication status, identity, and
// role. Anonymous callers get isAuthenticated=false and role "member".
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteJSON(w, http.StatusOK, meResponse{Role: models.RoleMember})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	uierrors.WriteJSON(w, http.StatusOK, meResponse{
		IsAuthenticated: true,
		Email:           user.Email,
		Name:            user.Name,
		Picture:         user.Picture,
		Source:          user.Source,
		Role:            h.Gate.Resolve(ctx, user.Email),
	})
}
