package permissions

import (
	"context"
	"fmt"
	"strings"
)

// Service handles permission catalog business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new permission. The name must be non-blank and unique,
// the type must be one of SYSTEM, RESOURCE or FEATURE.
func (s *Service) Create(ctx context.Context, req CreatePermissionRequest) (Permission, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Permission{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Type == "" {
		return Permission{}, fmt.Errorf("%w: type is required", ErrValidation)
	}
	if !req.Type.Valid() {
		return Permission{}, fmt.Errorf("%w: unknown type %q", ErrValidation, req.Type)
	}
	if !req.Action.Valid() {
		return Permission{}, fmt.Errorf("%w: unknown action %q", ErrValidation, req.Action)
	}

	created, err := s.repo.Create(ctx, Permission{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Type:        req.Type,
		Resource:    strings.TrimSpace(req.Resource),
		Action:      req.Action,
	})
	if err != nil {
		return Permission{}, fmt.Errorf("create permission: %w", err)
	}
	return created, nil
}

// GetByID fetches a permission by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (Permission, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByName fetches a permission by its unique name.
func (s *Service) GetByName(ctx context.Context, name string) (Permission, error) {
	return s.repo.GetByName(ctx, name)
}

// List returns all permissions.
func (s *Service) List(ctx context.Context) ([]Permission, error) {
	return s.repo.List(ctx)
}

// ListByResource returns permissions guarding the given resource.
func (s *Service) ListByResource(ctx context.Context, resource string) ([]Permission, error) {
	return s.repo.ListByResource(ctx, resource)
}

// ListByTypeAndResource returns permissions of the given type guarding the
// given resource.
func (s *Service) ListByTypeAndResource(ctx context.Context, t Type, resource string) ([]Permission, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrValidation, t)
	}
	return s.repo.ListByTypeAndResource(ctx, t, resource)
}

// Delete removes a permission by ID. Catalog deletes are strict: an absent ID
// is ErrNotFound. Ledger rows referencing the permission are not touched.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
