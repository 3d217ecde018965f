package notes

import (
	"context"
	"net/http"

	notestore "github.com/notehub-app/notehub/internal/app/store/notes"
	"github.com/notehub-app/notehub/internal/app/system/authz"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"github.com/notehub-app/notehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleList returns the caller's notes, newest first. With a workspace_id
// query parameter the list is scoped to that workspace; without one it spans
// all of the caller's workspaces. Anonymous callers get an empty list.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.Caller(r)
	if !ok {
		webapi.WriteJSON(w, http.StatusOK, []noteResponse{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := notestore.New(h.DB)

	var (
		list []models.Note
		err  error
	)
	if raw := r.URL.Query().Get("workspace_id"); raw != "" {
		workspaceID, perr := primitive.ObjectIDFromHex(raw)
		if perr != nil {
			webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "workspace_id is not a valid id.")
			return
		}
		list, err = store.ListByWorkspace(ctx, workspaceID, caller)
	} else {
		list, err = store.ListByOwner(ctx, caller)
	}
	if err != nil {
		h.Log.Error("notes: list failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not list notes.")
		return
	}

	out := make([]noteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toResponse(n))
	}
	webapi.WriteJSON(w, http.StatusOK, out)
}
