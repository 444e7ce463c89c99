package users

import "github.com/go-chi/chi/v5"

// MountRoutes registers user registry endpoints on the given router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id:[0-9]+}", h.GetByID)
		r.Get("/username/{username}", h.GetByUsername)
		r.Put("/{id:[0-9]+}", h.Update)
		r.Delete("/{id:[0-9]+}", h.Delete)
	})
}
