package assignments

import "time"

// AssignRoleRequest is the payload for assigning a role to a user.
type AssignRoleRequest struct {
	RoleName   string     `json:"roleName" validate:"required"`
	AssignedBy int64      `json:"assignedBy" validate:"required"`
	ExpiresAt  *time.Time `json:"expiresAt"`
}

// PermissionCheckResponse is the body of a role-based permission check.
type PermissionCheckResponse struct {
	UserID        int64  `json:"userId"`
	Permission    string `json:"permission"`
	HasPermission bool   `json:"hasPermission"`
}
