package workspaces

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	workspacestore "github.com/notehub-app/notehub/internal/app/store/workspaces"
	"github.com/notehub-app/notehub/internal/app/system/authz"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleUpdate renames a workspace. The path never changes after creation, so
// links to the workspace keep working across renames.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.NotFound(w, "Workspace not found.")
		return
	}

	var req updateRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Workspace name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := workspacestore.New(h.DB)
	ws, err := store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workspacestore.ErrNotFound) {
			webapi.NotFound(w, "Workspace not found.")
			return
		}
		h.Log.Error("workspaces: load for rename failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not rename the workspace.")
		return
	}

	switch authz.AssertOwner(r, ws.OwnerID) {
	case authz.Unauthenticated:
		webapi.Unauthenticated(w)
		return
	case authz.Forbidden:
		webapi.Forbidden(w, "You do not own this workspace.")
		return
	}

	if err := store.Rename(ctx, ws.ID, req.Name); err != nil {
		if errors.Is(err, workspacestore.ErrNotFound) {
			webapi.NotFound(w, "Workspace not found.")
			return
		}
		h.Log.Error("workspaces: rename failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not rename the workspace.")
		return
	}

	ws, err = store.GetByID(ctx, ws.ID)
	if err != nil {
		h.Log.Error("workspaces: reload after rename failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not rename the workspace.")
		return
	}
	webapi.WriteJSON(w, http.StatusOK, toResponse(ws))
}
