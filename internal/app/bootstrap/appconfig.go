// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles the
// framework-level settings (ports, TLS, logging, CORS); everything specific
// to NoteHub lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: notehub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Attachment blob store (S3-compatible: MinIO, S3, R2)
	BlobEndpoint  string        // Object store endpoint (host:port)
	BlobAccessKey string        // Access key
	BlobSecretKey string        // Secret key
	BlobBucket    string        // Bucket for note attachments
	BlobUseSSL    bool          // Use TLS when talking to the object store
	BlobURLExpiry time.Duration // Lifetime of presigned upload/download URLs
}
