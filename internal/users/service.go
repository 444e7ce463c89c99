package users

import (
	"context"
	"fmt"
	"strings"
)

// Service handles user registry business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new user. Usernames are unique across the registry.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return User{}, fmt.Errorf("%w: username is required", ErrValidation)
	}

	user, err := s.repo.Create(ctx, User{
		Username: username,
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
	})
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetByID fetches a user by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUsername fetches a user by username.
func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// List returns all registered users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Update changes the user's profile fields. Blank fields in the request are
// ignored and keep their stored value; usernames cannot be changed.
func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if v := strings.TrimSpace(req.FullName); v != "" {
		user.FullName = v
	}
	if v := strings.TrimSpace(req.Email); v != "" {
		user.Email = v
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return User{}, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// Delete removes a user by ID. Registry deletes are strict; ledger rows
// for the user are not touched.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
