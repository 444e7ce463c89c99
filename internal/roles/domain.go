package roles

import (
	"time"

	"github.com/smauel/access/internal/permissions"
)

// Role represents a named bundle of permissions. The permission set is
// unordered and deduplicated by permission ID.
type Role struct {
	ID          int64                    `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Permissions []permissions.Permission `json:"permissions"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// HasPermission reports whether the role's set contains the permission ID.
func (r Role) HasPermission(permissionID int64) bool {
	for _, p := range r.Permissions {
		if p.ID == permissionID {
			return true
		}
	}
	return false
}
