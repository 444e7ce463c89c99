package users

// CreateUserRequest is the payload for registering a user.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// UpdateUserRequest is the payload for a profile update. Blank fields keep
// their stored value.
type UpdateUserRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
}
