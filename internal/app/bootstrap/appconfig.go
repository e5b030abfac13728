// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where ClubHub keeps its database, cookie, storage, and
// optional-service settings.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: clubhub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Session cookie lifetime

	// Cart and visitor cookies
	CartHashKey  string // 32+ bytes; signs the cart and visitor cookies
	CartBlockKey string // 16, 24, or 32 bytes; encrypts the cart cookie

	// Owner bootstrap
	OwnerEmail string // initializes the roles document at startup when set

	// File storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/uploads")

	// S3 configuration (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "club/")
	StorageS3Endpoint  string // S3-compatible endpoint (blank for AWS)
	StorageS3PublicURL string // Public base URL objects are served from

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	BaseURL            string // e.g., "https://club.example.org"; callback is BaseURL + /auth/google/callback

	// Bearer tokens from the hosted auth provider
	AuthJWTSecret string // blank disables Bearer auth
	AuthJWTIssuer string // required iss claim when set

	// DevLogin enables POST /auth/dev-login. Never enable in production.
	DevLogin bool

	// Optional services
	ChatResponderURL string // blank means canned replies only
	SearchSummaryURL string // blank disables the encyclopedia lookup

	// Rate limiting of public writes, per client IP
	RateLimitPerMinute int
	RateLimitBurst     int

	// Cache
	CacheEnabled bool

	// Audit logging
	AuditLogAuth  string
	AuditLogAdmin string
}
