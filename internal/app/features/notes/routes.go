package notes

import "github.com/go-chi/chi/v5"

// Routes mounts the note endpoints. Listing answers anonymous callers with an
// empty result, so middleware-level auth is not applied; every mutation
// checks the caller itself.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	r.Post("/upload-url", h.HandleUploadURL)
	r.Get("/file-url", h.HandleFileURL)

	return r
}
