package grants

import "time"

// GrantPermissionRequest is the payload for a direct permission grant.
type GrantPermissionRequest struct {
	PermissionName string     `json:"permissionName" validate:"required"`
	GrantedBy      int64      `json:"grantedBy" validate:"required"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

// GrantRoleRequest is the payload for granting a role's permission snapshot.
type GrantRoleRequest struct {
	RoleName  string     `json:"roleName" validate:"required"`
	GrantedBy int64      `json:"grantedBy" validate:"required"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// PermissionCheckResponse is the body of a permission check lookup.
type PermissionCheckResponse struct {
	UserID        int64  `json:"userId"`
	Permission    string `json:"permission"`
	HasPermission bool   `json:"hasPermission"`
}
