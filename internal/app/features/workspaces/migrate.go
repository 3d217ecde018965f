package workspaces

import (
	"context"
	"errors"
	"net/http"

	workspacestore "github.com/notehub-app/notehub/internal/app/store/workspaces"
	"github.com/notehub-app/notehub/internal/app/system/authz"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"go.uber.org/zap"
)

// HandleMigrate assigns paths to the caller's workspaces that predate path
// assignment. It is safe to call repeatedly: workspaces that already have a
// path are untouched, and an anonymous call is a silent no-op rather than an
// error so clients can fire it unconditionally on startup.
func (h *Handler) HandleMigrate(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.Caller(r)
	if !ok {
		webapi.WriteJSON(w, http.StatusOK, migrateResponse{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	store := workspacestore.New(h.DB)
	missing, err := store.ListMissingPath(ctx, caller)
	if err != nil {
		h.Log.Error("workspaces: list missing paths failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not migrate workspaces.")
		return
	}

	migrated := 0
	for _, ws := range missing {
		path, err := choosePath(ctx, store, ws.Name)
		if err != nil {
			h.Log.Error("workspaces: migrate path assignment failed",
				zap.String("workspace_id", ws.ID.Hex()),
				zap.Error(err))
			webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not migrate workspaces.")
			return
		}
		if err := store.SetPath(ctx, ws.ID, path); err != nil {
			if errors.Is(err, workspacestore.ErrDuplicatePath) {
				// Lost the race for this path; the next migrate run picks
				// the workspace up again with a fresh candidate.
				h.Log.Warn("workspaces: migrate path collision, skipping",
					zap.String("workspace_id", ws.ID.Hex()),
					zap.String("path", path))
				continue
			}
			h.Log.Error("workspaces: migrate set path failed",
				zap.String("workspace_id", ws.ID.Hex()),
				zap.Error(err))
			webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not migrate workspaces.")
			return
		}
		migrated++
	}

	if migrated > 0 {
		h.Log.Info("workspace paths migrated", zap.Int("count", migrated))
	}
	webapi.WriteJSON(w, http.StatusOK, migrateResponse{Migrated: migrated})
}
