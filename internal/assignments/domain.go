package assignments

import (
	"time"

	"github.com/smauel/access/internal/roles"
)

// UserRoleAssignment is one row of the role assignment ledger. Unlike direct
// grants, an assignment stores only the link to the role: the permissions it
// conveys are whatever the role holds when resolution runs.
type UserRoleAssignment struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	Role       roles.Role `json:"role"`
	AssignedAt time.Time  `json:"assignedAt"`
	AssignedBy int64      `json:"assignedBy"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// Active reports whether the assignment is unexpired at the given instant.
func (a UserRoleAssignment) Active(now time.Time) bool {
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}
