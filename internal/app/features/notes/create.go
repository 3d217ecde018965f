package notes

import (
	"context"
	"errors"
	"net/http"

	notestore "github.com/notehub-app/notehub/internal/app/store/notes"
	workspacestore "github.com/notehub-app/notehub/internal/app/store/workspaces"
	"github.com/notehub-app/notehub/internal/app/system/authz"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"github.com/notehub-app/notehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate adds a note to one of the caller's workspaces.
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

	workspaceID, err := primitive.ObjectIDFromHex(req.WorkspaceID)
	if err != nil {
		webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "workspace_id is not a valid id.")
		return
	}

	var attachment *models.Attachment
	if req.Attachment != nil {
		if err := req.Attachment.validate(); err != nil {
			webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
			return
		}
		attachment = req.Attachment.toModel()
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// The note lands in the workspace only if the caller owns it.
	ws, err := workspacestore.New(h.DB).GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, workspacestore.ErrNotFound) {
			webapi.NotFound(w, "Workspace not found.")
			return
		}
		h.Log.Error("notes: load workspace failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not create the note.")
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

	n, err := notestore.New(h.DB).Create(ctx, models.Note{
		OwnerID:     caller,
		WorkspaceID: ws.ID,
		Text:        req.Text,
		Attachment:  attachment,
	})
	if err != nil {
		h.Log.Error("notes: create failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not create the note.")
		return
	}

	webapi.WriteJSON(w, http.StatusCreated, toResponse(n))
}
