// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authfeature "github.com/notehub-app/notehub/internal/app/features/authapi"
	healthfeature "github.com/notehub-app/notehub/internal/app/features/health"
	notesfeature "github.com/notehub-app/notehub/internal/app/features/notes"
	workspacesfeature "github.com/notehub-app/notehub/internal/app/features/workspaces"
	"github.com/notehub-app/notehub/internal/app/system/auth"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. NoteHub applies the session middleware
// globally and mounts the JSON API: auth, workspaces, and notes, plus the
// health endpoint for load balancers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Accounts and sessions
	authHandler := authfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/api/auth", authfeature.Routes(authHandler))

	// Workspaces, including the cascading delete and path migration
	workspacesHandler := workspacesfeature.NewHandler(deps.MongoDatabase, deps.Blob, logger)
	r.Mount("/api/workspaces", workspacesfeature.Routes(workspacesHandler))

	// Notes and the attachment upload/download protocol
	notesHandler := notesfeature.NewHandler(deps.MongoDatabase, deps.Blob, logger)
	r.Mount("/api/notes", notesfeature.Routes(notesHandler))

	return r, nil
}
