package grants

import "github.com/go-chi/chi/v5"

// MountRoutes registers direct grant ledger endpoints on the given router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/user-permissions", func(r chi.Router) {
		r.Post("/users/{userId:[0-9]+}/permissions", h.Grant)
		r.Post("/users/{userId:[0-9]+}/roles", h.GrantRole)
		r.Get("/users/{userId:[0-9]+}/permissions", h.ListActive)
		r.Get("/users/{userId:[0-9]+}/permissions/{name}/check", h.Check)
		r.Delete("/{id:[0-9]+}", h.Revoke)
		r.Delete("/users/{userId:[0-9]+}", h.RevokeAll)
	})
}
