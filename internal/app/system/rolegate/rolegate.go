// Package rolegate decides what a principal may do. It resolves an email to
// owner, admin, or member against the roles document and enforces that only
// the owner changes the admin list.
//
// Resolution fails closed: anything that prevents reading the roles
// document yields RoleMember.
package rolegate

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

// ErrForbidden is returned when the acting principal is not the owner.
var ErrForbidden = errors.New("forbidden")

// RoleStore is the persistence the gate needs. *roles.Store satisfies it.
type RoleStore interface {
	Get(ctx context.Context) (models.Roles, error)
	InitOwner(ctx context.Context, owner string) (bool, error)
	AddAdmin(ctx context.Context, email string) error
	RemoveAdmin(ctx context.Context, email string) error
}

// Gate resolves roles and guards admin-list changes.
type Gate struct {
	store RoleStore
	log   *zap.Logger
}

func New(store RoleStore, logger *zap.Logger) *Gate {
	return &Gate{store: store, log: logger}
}

// Resolve returns the role of email. Comparison is case-insensitive; an
// empty email, a missing roles document, or a store failure yields member.
func (g *Gate) Resolve(ctx context.Context, email string) models.Role {
	e := normalize.Email(email)
	if e == "" {
		return models.RoleMember
	}
	r, err := g.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			g.log.Warn("role resolution failed; treating as member",
				zap.String("email", e), zap.Error(err))
		}
		return models.RoleMember
	}
	return roleOf(r, e)
}

func roleOf(r models.Roles, email string) models.Role {
	owner := r.OwnerCI
	if owner == "" {
		owner = normalize.Email(r.Owner)
	}
	if owner != "" && email == owner {
		return models.RoleOwner
	}
	for _, a := range r.Admins {
		if normalize.Email(a) == email {
			return models.RoleAdmin
		}
	}
	return models.RoleMember
}

// Snapshot returns the roles document, or docstore.ErrNotFound when the
// owner has not been initialized.
func (g *Gate) Snapshot(ctx context.Context) (models.Roles, error) {
	return g.store.Get(ctx)
}

// InitializeOwner creates the roles document with email as owner when none
// exists. It is a no-op (created=false) otherwise.
// The owner is stored as supplied, trimmed; matching uses the folded copy.
func (g *Gate) InitializeOwner(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if err := inputval.Email("email", normalize.Email(email)); err != nil {
		return false, err
	}
	created, err := g.store.InitOwner(ctx, email)
	if err != nil {
		return false, err
	}
	if created {
		g.log.Info("site owner initialized", zap.String("owner", email))
	}
	return created, nil
}

// AddAdmin grants admin to email. actor must be the owner.
func (g *Gate) AddAdmin(ctx context.Context, actor, email string) error {
	email, err := g.checkAdminChange(ctx, actor, email)
	if err != nil {
		return err
	}
	return g.store.AddAdmin(ctx, email)
}

// RemoveAdmin revokes admin from email. actor must be the owner.
func (g *Gate) RemoveAdmin(ctx context.Context, actor, email string) error {
	email, err := g.checkAdminChange(ctx, actor, email)
	if err != nil {
		return err
	}
	return g.store.RemoveAdmin(ctx, email)
}

func (g *Gate) checkAdminChange(ctx context.Context, actor, email string) (string, error) {
	if g.Resolve(ctx, actor) != models.RoleOwner {
		return "", ErrForbidden
	}
	email = normalize.Email(email)
	if err := inputval.Email("email", email); err != nil {
		return "", err
	}
	if email == normalize.Email(actor) {
		return "", inputval.New("email", "the owner cannot be listed as an admin")
	}
	return email, nil
}

type ctxKey struct{}

// RoleFrom returns the role RequireRole resolved for this request.
func RoleFrom(ctx context.Context) (models.Role, bool) {
	r, ok := ctx.Value(ctxKey{}).(models.Role)
	return r, ok
}

// WithRole returns ctx carrying role.
func WithRole(ctx context.Context, role models.Role) context.Context {
	return context.WithValue(ctx, ctxKey{}, role)
}

// RequireRole admits signed-in principals whose role is at least min.
// Anonymous callers get 401, insufficient roles 403.
func (g *Gate) RequireRole(min models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := auth.CurrentEmail(r)
			if email == "" {
				auth.WriteUnauthorized(w)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			role := g.Resolve(ctx, email)
			cancel()

			if !role.AtLeast(min) {
				g.log.Info("role gate denied",
					zap.String("email", email),
					zap.String("role", string(role)),
					zap.String("required", string(min)),
					zap.String("path", r.URL.Path))
				auth.WriteForbidden(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithRole(r.Context(), role)))
		})
	}
}

// RequireAdmin is RequireRole(models.RoleAdmin).
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return g.RequireRole(models.RoleAdmin)(next)
}

// RequireOwner is RequireRole(models.RoleOwner).
func (g *Gate) RequireOwner(next http.Handler) http.Handler {
	return g.RequireRole(models.RoleOwner)(next)
}
