package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/smauel/access/internal/permissions"
)

// PermissionResolver looks up catalog permissions for membership changes.
type PermissionResolver interface {
	GetByID(ctx context.Context, id int64) (permissions.Permission, error)
}

// Service handles role catalog business logic.
type Service struct {
	repo  Repository
	perms PermissionResolver
}

// NewService builds a Service instance.
func NewService(repo Repository, perms PermissionResolver) *Service {
	return &Service{repo: repo, perms: perms}
}

// Create registers a new role with an optional initial permission set. Every
// supplied permission ID must resolve; otherwise nothing is persisted.
func (s *Service) Create(ctx context.Context, req CreateRoleRequest) (Role, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Role{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	seen := make(map[int64]struct{}, len(req.PermissionIDs))
	ids := make([]int64, 0, len(req.PermissionIDs))
	for _, id := range req.PermissionIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, err := s.perms.GetByID(ctx, id); err != nil {
			return Role{}, fmt.Errorf("resolve permission %d: %w", id, err)
		}
		ids = append(ids, id)
	}

	role, err := s.repo.Create(ctx, name, strings.TrimSpace(req.Description), ids)
	if err != nil {
		return Role{}, fmt.Errorf("create role: %w", err)
	}
	return role, nil
}

// GetByID fetches a role with its full permission set.
func (s *Service) GetByID(ctx context.Context, id int64) (Role, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByName fetches a role by name with its full permission set.
func (s *Service) GetByName(ctx context.Context, name string) (Role, error) {
	return s.repo.GetByName(ctx, name)
}

// List returns all roles with their permission sets.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.repo.List(ctx)
}

// AddPermission adds a permission to the role's set. Adding an already
// present permission is a no-op; the updated role is returned either way.
func (s *Service) AddPermission(ctx context.Context, roleID, permissionID int64) (Role, error) {
	if _, err := s.repo.GetByID(ctx, roleID); err != nil {
		return Role{}, fmt.Errorf("resolve role %d: %w", roleID, err)
	}
	if _, err := s.perms.GetByID(ctx, permissionID); err != nil {
		return Role{}, fmt.Errorf("resolve permission %d: %w", permissionID, err)
	}
	if err := s.repo.AddPermission(ctx, roleID, permissionID); err != nil {
		return Role{}, fmt.Errorf("add permission: %w", err)
	}
	return s.repo.GetByID(ctx, roleID)
}

// RemovePermission removes a permission from the role's set. The permission
// ID must resolve in the catalog even when the role does not hold it; removal
// of a not-present permission is a no-op returning the unchanged role.
func (s *Service) RemovePermission(ctx context.Context, roleID, permissionID int64) (Role, error) {
	if _, err := s.repo.GetByID(ctx, roleID); err != nil {
		return Role{}, fmt.Errorf("resolve role %d: %w", roleID, err)
	}
	if _, err := s.perms.GetByID(ctx, permissionID); err != nil {
		return Role{}, fmt.Errorf("resolve permission %d: %w", permissionID, err)
	}
	if err := s.repo.RemovePermission(ctx, roleID, permissionID); err != nil {
		return Role{}, fmt.Errorf("remove permission: %w", err)
	}
	return s.repo.GetByID(ctx, roleID)
}

// Delete removes a role by ID. Strict like all catalog deletes. Member
// permissions stay in the catalog and ledger rows referencing the role are
// left alone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
