package roles

// CreateRoleRequest is the payload for registering a role.
type CreateRoleRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	PermissionIDs []int64 `json:"permissionIds"`
}
