// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/notehub-app/notehub/internal/app/system/blob"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for NoteHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: NOTEHUB_MONGO_URI, NOTEHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "notehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "notehub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Attachment blob store (S3-compatible)
	{Name: "blob_endpoint", Default: "localhost:9000", Desc: "Object store endpoint (host:port)"},
	{Name: "blob_access_key", Default: "minioadmin", Desc: "Object store access key"},
	{Name: "blob_secret_key", Default: "minioadmin", Desc: "Object store secret key"},
	{Name: "blob_bucket", Default: "notehub-attachments", Desc: "Bucket for note attachments"},
	{Name: "blob_use_ssl", Default: false, Desc: "Use TLS for the object store connection"},
	{Name: "blob_url_expiry", Default: "15m", Desc: "Presigned URL lifetime (e.g., 15m, 1h)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have access
// to configuration before any backends or handlers are built. CoreConfig
// comes from the shared WAFFLE layer; AppConfig is specific to this app.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, NOTEHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "NOTEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		BlobEndpoint:  appValues.String("blob_endpoint"),
		BlobAccessKey: appValues.String("blob_access_key"),
		BlobSecretKey: appValues.String("blob_secret_key"),
		BlobBucket:    appValues.String("blob_bucket"),
		BlobUseSSL:    appValues.Bool("blob_use_ssl"),
		BlobURLExpiry: appValues.Duration("blob_url_expiry", blob.DefaultURLExpiry),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// NoteHub validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and refuses to start in production
// with the development session key still in place.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.BlobEndpoint == "" || appCfg.BlobBucket == "" {
		return fmt.Errorf("blob_endpoint and blob_bucket are required")
	}

	if coreCfg.Env == "prod" && appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("session_key must be changed from the development default in production")
	}

	return nil
}
