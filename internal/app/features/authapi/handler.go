// Package authapi exposes the signup / signin / signout endpoints that back
// the cookie-session identity layer.
package authapi

import (
	"github.com/notehub-app/notehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides HTTP handlers for account creation and sessions.
type Handler struct {
	DB       *mongo.Database
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

// NewHandler creates a new authapi Handler.
func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Sessions: sm,
		Log:      logger,
	}
}
