package permissions

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers permission catalog routes on the provided router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/permissions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id:[0-9]+}", h.GetByID)
		r.Get("/name/{name}", h.GetByName)
		r.Get("/resource/{resource}", h.ListByResource)
		r.Get("/type/{type}/resource/{resource}", h.ListByTypeAndResource)
		r.Delete("/{id:[0-9]+}", h.Delete)
	})
}
