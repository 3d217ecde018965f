package workspaces

import (
	"context"
	"errors"
	"net/http"
	"strings"

	workspacestore "github.com/notehub-app/notehub/internal/app/store/workspaces"
	"github.com/notehub-app/notehub/internal/app/system/authz"
	"github.com/notehub-app/notehub/internal/app/system/slug"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"github.com/notehub-app/notehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate creates a workspace for the caller and assigns its path.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.Caller(r)
	if !ok {
		webapi.Unauthenticated(w)
		return
	}

	var req createRequest
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
	path, err := choosePath(ctx, store, req.Name)
	if err != nil {
		h.Log.Error("workspaces: path assignment failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not create the workspace.")
		return
	}

	ws, err := store.Create(ctx, models.Workspace{
		OwnerID: caller,
		Name:    req.Name,
		Path:    path,
	})
	if err != nil {
		if errors.Is(err, workspacestore.ErrDuplicatePath) {
			// The suffixed candidate collided too (one disambiguation
			// attempt per create). The client can simply retry.
			webapi.WriteError(w, http.StatusConflict, "DUPLICATE_PATH", err.Error())
			return
		}
		h.Log.Error("workspaces: create failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not create the workspace.")
		return
	}

	h.Log.Info("workspace created",
		zap.String("workspace_id", ws.ID.Hex()),
		zap.String("path", ws.Path))
	webapi.WriteJSON(w, http.StatusCreated, toResponse(ws))
}

// choosePath derives the path for a workspace name: slugify, fall back to a
// random path when the name yields nothing usable, and append one random
// suffix when the candidate is already taken. The unique index on path is the
// final arbiter; a concurrent create that wins the same candidate surfaces as
// ErrDuplicatePath from the insert.
func choosePath(ctx context.Context, store *workspacestore.Store, name string) (string, error) {
	path := slug.Make(name)
	if path == "" {
		return slug.Generate()
	}

	taken, err := store.PathExists(ctx, path)
	if err != nil {
		return "", err
	}
	if !taken {
		return path, nil
	}

	suffix, err := slug.Suffix()
	if err != nil {
		return "", err
	}
	return path + "-" + suffix, nil
}
