// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	rolestore "github.com/dalemusser/clubhub/internal/app/store/roles"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/rolegate"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := ensureOwner(ctx, deps, appCfg.OwnerEmail, logger); err != nil {
		return err
	}

	if deps.StateCleanup != nil {
		deps.StateCleanup.Start()
	}
	return nil
}

// ensureOwner initializes the roles document with email as owner when no
// owner exists. An existing, different owner is kept and logged.
func ensureOwner(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}
	store := rolestore.New(deps.ClubHubMongoDatabase)
	created, err := rolegate.New(store, logger).InitializeOwner(ctx, email)
	if err != nil {
		logger.Error("owner initialization failed", zap.Error(err))
		return err
	}
	if created {
		return nil
	}

	current, err := store.Get(ctx)
	if err != nil {
		return err
	}
	if normalize.Email(current.Owner) != normalize.Email(email) {
		logger.Warn("owner_email differs from the stored owner; the stored owner is kept",
			zap.String("configured", normalize.Email(email)),
			zap.String("stored", current.Owner))
	}
	return nil
}
