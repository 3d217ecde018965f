package workspaces

import "github.com/go-chi/chi/v5"

// Routes mounts the workspace endpoints. Authentication is not enforced by
// middleware here: reads answer anonymous callers with empty results and the
// migration is a silent no-op, so each handler applies its own check.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Post("/migrate", h.HandleMigrate)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
