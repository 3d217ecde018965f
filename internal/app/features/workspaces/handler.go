// Package workspaces implements the workspace API: listing, creation with
// path assignment, rename, cascading delete, and the path backfill migration.
package workspaces

import (
	"github.com/notehub-app/notehub/internal/app/system/blob"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides HTTP handlers for workspace management.
type Handler struct {
	DB   *mongo.Database
	Blob blob.Store
	Log  *zap.Logger
}

// NewHandler creates a new workspaces Handler. The blob store is needed for
// the cascading delete, which removes note attachments along with the notes.
func NewHandler(db *mongo.Database, store blob.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:   db,
		Blob: store,
		Log:  logger,
	}
}
