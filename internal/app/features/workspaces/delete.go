package workspaces

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	notestore "github.com/notehub-app/notehub/internal/app/store/notes"
	workspacestore "github.com/notehub-app/notehub/internal/app/store/workspaces"
	"github.com/notehub-app/notehub/internal/app/system/authz"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"github.com/notehub-app/notehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HandleDelete removes a workspace along with all of its notes and their
// attachments. For a signed-in caller, deleting a workspace that no longer
// exists is a no-op success, so a retried delete never fails. Anonymous
// callers are rejected before any lookup, whether or not the id resolves.
//
// The cascade runs notes first, workspace record last: if anything fails
// mid-cascade the workspace stays listed and the client can retry the whole
// delete. Already-deleted notes are skipped on the retry because each note is
// removed together with its blob.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := authz.Caller(r); !ok {
		webapi.Unauthenticated(w)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		// An id that never was a workspace is as gone as a deleted one.
		webapi.WriteJSON(w, http.StatusOK, deleteResponse{Deleted: false})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	wsStore := workspacestore.New(h.DB)
	ws, err := wsStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workspacestore.ErrNotFound) {
			webapi.WriteJSON(w, http.StatusOK, deleteResponse{Deleted: false})
			return
		}
		h.Log.Error("workspaces: load for delete failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not delete the workspace.")
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

	nStore := notestore.New(h.DB)
	notes, err := nStore.ListByWorkspace(ctx, ws.ID, ws.OwnerID)
	if err != nil {
		h.Log.Error("workspaces: list notes for delete failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not delete the workspace.")
		return
	}

	var deleted int64
	g, gctx := errgroup.WithContext(ctx)
	for _, n := range notes {
		g.Go(func() error {
			if err := h.deleteNote(gctx, nStore, n); err != nil {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.Log.Error("workspaces: cascade failed",
			zap.String("workspace_id", ws.ID.Hex()),
			zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not delete the workspace's notes.")
		return
	}
	deleted = int64(len(notes))

	if _, err := wsStore.Delete(ctx, ws.ID); err != nil {
		h.Log.Error("workspaces: delete failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not delete the workspace.")
		return
	}

	h.Log.Info("workspace deleted",
		zap.String("workspace_id", ws.ID.Hex()),
		zap.Int64("notes_deleted", deleted))
	webapi.WriteJSON(w, http.StatusOK, deleteResponse{Deleted: true, NotesDeleted: deleted})
}

// deleteNote removes one note and, if present, its attachment blob. The blob
// goes first so a half-finished delete leaves a note pointing at a missing
// blob rather than an orphaned blob nothing references.
func (h *Handler) deleteNote(ctx context.Context, nStore *notestore.Store, n models.Note) error {
	if n.HasAttachment() {
		if err := h.Blob.Delete(ctx, n.Attachment.BlobKey); err != nil {
			return err
		}
	}
	_, err := nStore.Delete(ctx, n.ID)
	return err
}
