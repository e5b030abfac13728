// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/clubhub/internal/app/features/search"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ClubHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: CLUBHUB_MONGO_URI, CLUBHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "clubhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "clubhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime (e.g., 720h)"},

	// Cart and visitor cookies
	{Name: "cart_hash_key", Default: "dev-only-cart-hash-key-0123456789ABCDEF", Desc: "Cart/visitor cookie signing key (32+ bytes)"},
	{Name: "cart_block_key", Default: "dev-only-cart-block-key-32bytes!", Desc: "Cart cookie encryption key (16, 24, or 32 bytes)"},

	// Owner bootstrap
	{Name: "owner_email", Default: "", Desc: "Site owner email; initializes the roles document on startup"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded files"},
	{Name: "storage_local_url", Default: "/uploads", Desc: "URL prefix for serving local files"},

	// S3 configuration
	{Name: "storage_s3_region", Default: "us-east-1", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "", Desc: "S3 key prefix"},
	{Name: "storage_s3_endpoint", Default: "", Desc: "S3-compatible endpoint (blank for AWS)"},
	{Name: "storage_s3_public_url", Default: "", Desc: "Public base URL for stored objects (CDN or bucket URL)"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},
	{Name: "base_url", Default: "http://localhost:8080", Desc: "Public base URL (OAuth callback is built from it)"},

	// Bearer tokens
	{Name: "auth_jwt_secret", Default: "", Desc: "HS256 secret for Bearer tokens from the auth provider (blank disables)"},
	{Name: "auth_jwt_issuer", Default: "", Desc: "Required iss claim for Bearer tokens (blank accepts any)"},

	{Name: "dev_login", Default: false, Desc: "Enable POST /auth/dev-login (development only)"},

	// Optional services
	{Name: "chat_responder_url", Default: "", Desc: "External chat responder URL (blank uses canned replies)"},
	{Name: "search_summary_url", Default: search.DefaultSummaryURL, Desc: "Encyclopedia page-summary endpoint (blank disables)"},

	// Rate limiting
	{Name: "rate_limit_per_minute", Default: 20, Desc: "Public write requests allowed per client IP per minute"},
	{Name: "rate_limit_burst", Default: 10, Desc: "Burst allowance for public writes"},

	{Name: "cache_enabled", Default: true, Desc: "Cache list reads in process"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CLUBHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CLUBHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		SessionMaxAge:    appValues.Duration("session_max_age", 30*24*time.Hour),

		CartHashKey:  appValues.String("cart_hash_key"),
		CartBlockKey: appValues.String("cart_block_key"),

		OwnerEmail: appValues.String("owner_email"),

		// File storage
		StorageType:      strings.ToLower(appValues.String("storage_type")),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		// S3
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageS3Endpoint:  appValues.String("storage_s3_endpoint"),
		StorageS3PublicURL: appValues.String("storage_s3_public_url"),

		// Google OAuth
		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),
		BaseURL:            appValues.String("base_url"),

		AuthJWTSecret: appValues.String("auth_jwt_secret"),
		AuthJWTIssuer: appValues.String("auth_jwt_issuer"),
		DevLogin:      appValues.Bool("dev_login"),

		ChatResponderURL: appValues.String("chat_responder_url"),
		SearchSummaryURL: appValues.String("search_summary_url"),

		RateLimitPerMinute: appValues.Int("rate_limit_per_minute"),
		RateLimitBurst:     appValues.Int("rate_limit_burst"),

		CacheEnabled: appValues.Bool("cache_enabled"),

		// Audit logging
		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Every problem found is reported, not just the first.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var errs []error

	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		errs = append(errs, fmt.Errorf("invalid MongoDB URI: %w", err))
	}
	if len(appCfg.SessionKey) < 32 {
		errs = append(errs, fmt.Errorf("session_key must be at least 32 characters"))
	}
	if len(appCfg.CartHashKey) < 32 {
		errs = append(errs, fmt.Errorf("cart_hash_key must be at least 32 characters"))
	}
	switch len(appCfg.CartBlockKey) {
	case 16, 24, 32:
	default:
		errs = append(errs, fmt.Errorf("cart_block_key must be 16, 24, or 32 bytes, got %d", len(appCfg.CartBlockKey)))
	}

	switch appCfg.StorageType {
	case "local":
		if appCfg.StorageLocalPath == "" || appCfg.StorageLocalURL == "" {
			errs = append(errs, fmt.Errorf("local storage requires storage_local_path and storage_local_url"))
		}
	case "s3":
		if appCfg.StorageS3Bucket == "" {
			errs = append(errs, fmt.Errorf("s3 storage requires storage_s3_bucket"))
		}
		if err := inputval.URL("storage_s3_public_url", appCfg.StorageS3PublicURL); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("storage_type must be 'local' or 's3', got %q", appCfg.StorageType))
	}

	if appCfg.OwnerEmail != "" {
		if err := inputval.Email("owner_email", appCfg.OwnerEmail); err != nil {
			errs = append(errs, err)
		}
	}
	if appCfg.AuthJWTSecret != "" && len(appCfg.AuthJWTSecret) < 32 {
		errs = append(errs, fmt.Errorf("auth_jwt_secret must be at least 32 characters"))
	}
	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		errs = append(errs, fmt.Errorf("google_client_id and google_client_secret must be set together"))
	}
	for field, v := range map[string]string{
		"base_url":           appCfg.BaseURL,
		"chat_responder_url": appCfg.ChatResponderURL,
		"search_summary_url": appCfg.SearchSummaryURL,
	} {
		if err := inputval.URL(field, v); err != nil {
			errs = append(errs, err)
		}
	}
	if appCfg.RateLimitPerMinute <= 0 || appCfg.RateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit_per_minute and rate_limit_burst must be positive"))
	}

	if appCfg.DevLogin {
		if coreCfg != nil && coreCfg.Env == "prod" {
			errs = append(errs, fmt.Errorf("dev_login must not be enabled in prod"))
		} else {
			logger.Warn("dev_login is enabled; anyone can sign in as any email")
		}
	}

	return errors.Join(errs...)
}
