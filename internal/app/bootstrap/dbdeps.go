// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/notehub-app/notehub/internal/app/system/blob"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Blob is the attachment store. Kept concrete so Startup can call
	// EnsureBucket; handlers only see the blob.Store interface.
	Blob *blob.Minio
}
