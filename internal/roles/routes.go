package roles

import "github.com/go-chi/chi/v5"

// MountRoutes registers role catalog endpoints on the given router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/roles", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id:[0-9]+}", h.GetByID)
		r.Get("/name/{name}", h.GetByName)
		r.Put("/{roleId:[0-9]+}/permissions/{permissionId:[0-9]+}", h.AddPermission)
		r.Delete("/{roleId:[0-9]+}/permissions/{permissionId:[0-9]+}", h.RemovePermission)
		r.Delete("/{id:[0-9]+}", h.Delete)
	})
}
