package authapi

import "github.com/go-chi/chi/v5"

// Routes mounts the account and session endpoints. None of them require an
// existing session; HandleSession reports the anonymous state rather than
// rejecting it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.HandleSignUp)
	r.Post("/signin", h.HandleSignIn)
	r.Post("/signout", h.HandleSignOut)
	r.Get("/session", h.HandleSession)

	return r
}
