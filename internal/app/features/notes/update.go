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
	"github.com/notehub-app/notehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleUpdate edits a note's text and attachment.
//
// The attachment field is tri-state: absent leaves the stored attachment
// alone, null removes it, an object replaces it. When a replacement or
// removal displaces a stored blob, the blob is deleted first and the record
// is only patched if that succeeds, so a blob is never orphaned by a
// half-applied update.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.NotFound(w, "Note not found.")
		return
	}

	var req updateRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var replacement *models.Attachment
	if req.Attachment.Set && req.Attachment.Value != nil {
		if err := req.Attachment.Value.validate(); err != nil {
			webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
			return
		}
		replacement = req.Attachment.Value.toModel()
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
		h.Log.Error("notes: load for update failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not update the note.")
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

	// Delete the displaced blob before touching the record.
	if req.Attachment.Set && n.HasAttachment() {
		displaced := replacement == nil || replacement.BlobKey != n.Attachment.BlobKey
		if displaced {
			if err := h.Blob.Delete(ctx, n.Attachment.BlobKey); err != nil {
				h.Log.Error("notes: displaced blob delete failed",
					zap.String("note_id", n.ID.Hex()),
					zap.String("blob_key", n.Attachment.BlobKey),
					zap.Error(err))
				webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not update the note's attachment.")
				return
			}
		}
	}

	remove := req.Attachment.Set && replacement == nil
	if err := store.Update(ctx, n.ID, req.Text, replacement, remove); err != nil {
		if errors.Is(err, notestore.ErrNotFound) {
			webapi.NotFound(w, "Note not found.")
			return
		}
		h.Log.Error("notes: update failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not update the note.")
		return
	}

	n, err = store.GetByID(ctx, n.ID)
	if err != nil {
		h.Log.Error("notes: reload after update failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not update the note.")
		return
	}
	webapi.WriteJSON(w, http.StatusOK, toResponse(n))
}
