// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/filestore"
	"github.com/dalemusser/clubhub/internal/app/system/ratelimit"
	"github.com/dalemusser/clubhub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app. ConnectDB builds
// all of them, so every later hook sees the same instances.
type DBDeps struct {
	ClubHubMongoClient   *mongo.Client
	ClubHubMongoDatabase *mongo.Database

	Cache   *cache.Cache    // nil when cache_enabled is false
	Files   filestore.Store // upload backend
	Storage string          // "local" or "s3", reported by /health
	Limiter *ratelimit.Limiter

	StateCleanup *workers.StateCleanup
}
