package authapi

import (
	"net/http"

	"github.com/notehub-app/notehub/internal/app/system/auth"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"go.uber.org/zap"
)

// HandleSession reports the caller's session state. Anonymous callers get a
// 200 with authenticated=false rather than a 401, so the client can render
// either state from one request.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.WriteJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}
	webapi.WriteJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		User: &userResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	})
}

// HandleSignOut clears the session cookie. Signing out without a session is a
// no-op success.
func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Error("signout: session clear failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not sign out.")
		return
	}
	webapi.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
