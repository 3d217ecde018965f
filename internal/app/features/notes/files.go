package notes

import (
	"context"
	"errors"
	"net/http"

	notestore "github.com/notehub-app/notehub/internal/app/store/notes"
	"github.com/notehub-app/notehub/internal/app/system/authz"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"go.uber.org/zap"
)

// HandleUploadURL hands the caller a presigned upload slot. The client PUTs
// the file bytes to the returned URL, then references the key in a note
// create or update.
func (h *Handler) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	if _, ok := authz.Caller(r); !ok {
		webapi.Unauthenticated(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	up, err := h.Blob.PresignedUpload(ctx)
	if err != nil {
		h.Log.Error("notes: presign upload failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not create an upload URL.")
		return
	}

	webapi.WriteJSON(w, http.StatusOK, uploadURLResponse{Key: up.Key, URL: up.URL})
}

// HandleFileURL resolves an attachment key to a time-limited download URL.
// The key must belong to one of the caller's notes; keys that do not resolve
// to a note of theirs are reported as not found.
func (h *Handler) HandleFileURL(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.Caller(r)
	if !ok {
		webapi.Unauthenticated(w)
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "key is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := notestore.New(h.DB).GetByBlobKey(ctx, caller, key); err != nil {
		if errors.Is(err, notestore.ErrNotFound) {
			webapi.NotFound(w, "Attachment not found.")
			return
		}
		h.Log.Error("notes: blob key lookup failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not resolve the file URL.")
		return
	}

	url, err := h.Blob.PresignedGet(ctx, key)
	if err != nil {
		h.Log.Error("notes: presign get failed", zap.String("blob_key", key), zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not resolve the file URL.")
		return
	}

	webapi.WriteJSON(w, http.StatusOK, fileURLResponse{URL: url})
}
