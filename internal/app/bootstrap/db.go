// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/oauthstate"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/filestore"
	"github.com/dalemusser/clubhub/internal/app/system/indexes"
	"github.com/dalemusser/clubhub/internal/app/system/ratelimit"
	"github.com/dalemusser/clubhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB, verifies the connection with a ping, and
// builds the process-wide backends: cache, file storage, the rate limiter,
// and the OAuth state cleanup worker (started in Startup).
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetAppName("clubhub").
		SetServerSelectionTimeout(10 * time.Second)
	if appCfg.MongoMaxPoolSize > 0 {
		opts.SetMaxPoolSize(appCfg.MongoMaxPoolSize)
	}
	if appCfg.MongoMinPoolSize > 0 {
		opts.SetMinPoolSize(appCfg.MongoMinPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect to MongoDB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool", appCfg.MongoMaxPoolSize))

	deps := DBDeps{
		ClubHubMongoClient:   client,
		ClubHubMongoDatabase: client.Database(appCfg.MongoDatabase),
		Storage:              appCfg.StorageType,
		Limiter:              ratelimit.New(appCfg.RateLimitPerMinute, appCfg.RateLimitBurst, 10*time.Minute),
	}
	if appCfg.CacheEnabled {
		deps.Cache = cache.New()
	}

	deps.Files, err = newFileStore(ctx, appCfg)
	if err != nil {
		deps.Limiter.Stop()
		_ = client.Disconnect(context.Background())
		return DBDeps{}, err
	}
	logger.Info("file storage ready", zap.String("type", appCfg.StorageType))

	deps.StateCleanup = workers.NewStateCleanup(oauthstate.New(deps.ClubHubMongoDatabase), logger, 5*time.Minute)

	return deps, nil
}

func newFileStore(ctx context.Context, appCfg AppConfig) (filestore.Store, error) {
	if appCfg.StorageType == "s3" {
		return filestore.NewS3(ctx, filestore.S3Config{
			Bucket:    appCfg.StorageS3Bucket,
			Region:    appCfg.StorageS3Region,
			Prefix:    appCfg.StorageS3Prefix,
			Endpoint:  appCfg.StorageS3Endpoint,
			PublicURL: appCfg.StorageS3PublicURL,
		})
	}
	return filestore.NewLocal(appCfg.StorageLocalPath, appCfg.StorageLocalURL)
}

// EnsureSchema creates or reconciles the indexes every store relies on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.ClubHubMongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	logger.Info("indexes ensured")
	return nil
}
