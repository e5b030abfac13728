// internal/app/features/engagement/handler.go
package engagement

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	engagementstore "github.com/dalemusser/clubhub/internal/app/store/engagement"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/app/system/visitor"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves likes and comments for events, projects and blogs.
type Handler struct {
	Store    *engagementstore.Store
	Visitors *visitor.Issuer
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, c *cache.Cache, visitors *visitor.Issuer, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    engagementstore.New(db, c),
		Visitors: visitors,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// likerID is an opaque digest of the signed-in email, or the visitor
// cookie for anonymous callers. The cookie is issued on first use.
// likedBy is public, so raw emails never go into it.
func (h *Handler) likerID(w http.ResponseWriter, r *http.Request) (string, error) {
	if email := auth.CurrentEmail(r); email != "" {
		return h.Visitors.PrincipalID(email), nil
	}
	return h.Visitors.Ensure(w, r)
}

// Like handles POST /api/{collection}/{id}/like.
func (h *Handler) Like(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.likerID(w, r)
		if err != nil {
			h.ErrLog.WriteStoreError(w, r, "issue visitor id", err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		res, err := h.Store.ToggleLike(ctx, collection, chi.URLParam(r, "id"), userID)
		if err != nil {
			h.ErrLog.WriteStoreError(w, r, "toggle like", err)
			return
		}
		uierrors.WriteJSON(w, http.StatusOK, res)
	}
}

type commentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// Comment handles POST /api/{collection}/{id}/comments. A signed-in caller
// with no author in the body comments under their profile name.
func (h *Handler) Comment(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in commentRequest
		if err := uierrors.DecodeJSON(w, r, &in); err != nil {
			h.ErrLog.WriteStoreError(w, r, "decode comment", err)
			return
		}
		if in.Author == "" {
			if u, ok := auth.CurrentUser(r); ok {
				in.Author = u.Name
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		c, err := h.Store.AddComment(ctx, collection, chi.URLParam(r, "id"), in.Author, in.Content)
		if err != nil {
			h.ErrLog.WriteStoreError(w, r, "add comment", err)
			return
		}
		uierrors.WriteJSON(w, http.StatusCreated, c)
	}
}
