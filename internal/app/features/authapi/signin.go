package authapi

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/notehub-app/notehub/internal/app/store/users"
	"github.com/notehub-app/notehub/internal/app/system/auth"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"go.uber.org/zap"
)

// HandleSignIn verifies credentials and writes the session cookie. Unknown
// email and wrong password produce the same response so the endpoint does not
// leak which accounts exist.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := userstore.New(h.DB)
	user, err := store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			webapi.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect.")
			return
		}
		h.Log.Error("signin: lookup failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not sign in.")
		return
	}
	if !userstore.VerifyPassword(user, req.Password) {
		webapi.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect.")
		return
	}

	if err := h.Sessions.SignIn(w, r, auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}); err != nil {
		h.Log.Error("signin: session write failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not start a session.")
		return
	}

	webapi.WriteJSON(w, http.StatusOK, userResponse{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Name:  user.Name,
	})
}
