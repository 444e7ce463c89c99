package permissions

// CreatePermissionRequest is the payload for registering a permission.
type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Type        Type   `json:"type" validate:"required,oneof=SYSTEM RESOURCE FEATURE"`
	Resource    string `json:"resource"`
	Action      Action `json:"action" validate:"omitempty,oneof=CREATE READ UPDATE DELETE EXECUTE APPROVE REJECT"`
}
