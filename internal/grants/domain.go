package grants

import (
	"time"

	"github.com/smauel/access/internal/permissions"
)

// RoleRef records which role a ledger row was expanded from. Rows granted
// directly carry no role reference.
type RoleRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserPermission is one row of the direct grant ledger. Each row captures a
// single permission held by a user, either granted individually or as part
// of a role snapshot taken at grant time. Later changes to the role do not
// touch existing rows.
type UserPermission struct {
	ID         int64                  `json:"id"`
	UserID     int64                  `json:"userId"`
	Permission permissions.Permission `json:"permission"`
	Role       *RoleRef               `json:"role,omitempty"`
	ExpiresAt  *time.Time             `json:"expiresAt,omitempty"`
	GrantedAt  time.Time              `json:"grantedAt"`
	GrantedBy  int64                  `json:"grantedBy"`
}

// Active reports whether the row is unexpired at the given instant.
func (p UserPermission) Active(now time.Time) bool {
	return p.ExpiresAt == nil || p.ExpiresAt.After(now)
}
