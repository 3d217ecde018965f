package workspaces

import (
	"context"
	"net/http"

	workspacestore "github.com/notehub-app/notehub/internal/app/store/workspaces"
	"github.com/notehub-app/notehub/internal/app/system/authz"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"go.uber.org/zap"
)

// HandleList returns the caller's workspaces. Anonymous callers get an empty
// list, not an error, so the client can render the signed-out state from the
// same request it uses when signed in.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.Caller(r)
	if !ok {
		webapi.WriteJSON(w, http.StatusOK, []workspaceResponse{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := workspacestore.New(h.DB).ListByOwner(ctx, caller)
	if err != nil {
		h.Log.Error("workspaces: list failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not list workspaces.")
		return
	}

	out := make([]workspaceResponse, 0, len(list))
	for _, ws := range list {
		out = append(out, toResponse(ws))
	}
	webapi.WriteJSON(w, http.StatusOK, out)
}
