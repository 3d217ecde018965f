// Package notes implements the note API: listing, creation, editing, delete,
// and the presigned-URL endpoints for the attachment upload protocol.
package notes

import (
	"github.com/notehub-app/notehub/internal/app/system/blob"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides HTTP handlers for notes and their attachments.
type Handler struct {
	DB   *mongo.Database
	Blob blob.Store
	Log  *zap.Logger
}

// NewHandler creates a new notes Handler.
func NewHandler(db *mongo.Database, store blob.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:   db,
		Blob: store,
		Log:  logger,
	}
}
