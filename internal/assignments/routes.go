package assignments

import "github.com/go-chi/chi/v5"

// MountRoutes registers role assignment ledger endpoints on the given router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/user-roles", func(r chi.Router) {
		r.Post("/users/{userId:[0-9]+}/roles", h.Assign)
		r.Get("/users/{userId:[0-9]+}/roles", h.ListUserRoles)
		r.Get("/users/{userId:[0-9]+}/permissions", h.ListUserPermissions)
		r.Get("/users/{userId:[0-9]+}/permissions/{name}/check", h.Check)
		r.Delete("/users/{userId:[0-9]+}/roles/{roleId:[0-9]+}", h.Revoke)
		r.Delete("/users/{userId:[0-9]+}", h.RevokeAll)
	})
}
