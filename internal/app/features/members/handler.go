// internal/app/features/members/handler.go
package members

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/rolegate"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const collection = "members"

// Handler is the feature-level handler for the member directory.
type Handler struct {
	Store    *memberstore.Store
	Gate     *rolegate.Gate
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
}

func NewHandler(db *mongo.Database, c *cache.Cache, gate *rolegate.Gate, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    memberstore.New(db, c),
		Gate:     gate,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
	}
}

// isAdmin resolves the caller's role for routes that serve both the public
// and the admin console.
func (h *Handler) isAdmin(r *http.Request) bool {
	if role, ok := rolegate.RoleFrom(r.Context()); ok {
		return role.AtLeast(models.RoleAdmin)
	}
	email := auth.CurrentEmail(r)
	if email == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	return h.Gate.Resolve(ctx, email).AtLeast(models.RoleAdmin)
}
