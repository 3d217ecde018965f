package notes

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	notestore "github.com/notehub-app/notehub/internal/app/store/notes"
	"github.com/notehub-app/notehub/internal/app/system/authz"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete removes a note and its attachment blob. The blob goes first;
// if that fails the note stays so a retry can finish the job.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.NotFound(w, "Note not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := notestore.New(h.DB)
	n, err := store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, notestore.ErrNotFound) {
			webapi.NotFound(w, "Note not found.")
			return
		}
		h.Log.Error("notes: load for delete failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not delete the note.")
		return
	}

	switch authz.AssertOwner(r, n.OwnerID) {
	case authz.Unauthenticated:
		webapi.Unauthenticated(w)
		return
	case authz.Forbidden:
		webapi.Forbidden(w, "You do not own this note.")
		return
	}

	if n.HasAttachment() {
		if err := h.Blob.Delete(ctx, n.Attachment.BlobKey); err != nil {
			h.Log.Error("notes: attachment blob delete failed",
				zap.String("note_id", n.ID.Hex()),
				zap.String("blob_key", n.Attachment.BlobKey),
				zap.Error(err))
			webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not delete the note's attachment.")
			return
		}
	}

	if _, err := store.Delete(ctx, n.ID); err != nil {
		h.Log.Error("notes: delete failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not delete the note.")
		return
	}

	webapi.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
