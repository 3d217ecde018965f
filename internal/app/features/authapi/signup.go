package authapi

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	userstore "github.com/notehub-app/notehub/internal/app/store/users"
	"github.com/notehub-app/notehub/internal/app/system/auth"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"github.com/notehub-app/notehub/internal/app/system/webapi"
	"go.uber.org/zap"
)

const minPasswordLength = 8

// HandleSignUp creates an account and signs the new user in.
func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if _, err := mail.ParseAddress(req.Email); err != nil {
		webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "A valid email address is required.")
		return
	}
	if req.Name == "" {
		webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Name is required.")
		return
	}
	if len(req.Password) < minPasswordLength {
		webapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Password must be at least 8 characters.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := userstore.New(h.DB).Create(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			webapi.WriteError(w, http.StatusConflict, "DUPLICATE_EMAIL", err.Error())
			return
		}
		h.Log.Error("signup: create user failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not create the account.")
		return
	}

	if err := h.Sessions.SignIn(w, r, auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}); err != nil {
		h.Log.Error("signup: session write failed", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not start a session.")
		return
	}

	webapi.WriteJSON(w, http.StatusCreated, userResponse{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Name:  user.Name,
	})
}
