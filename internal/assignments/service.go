package assignments

import (
	"context"
	"fmt"
	"time"

	"github.com/smauel/access/internal/permissions"
	"github.com/smauel/access/internal/roles"
)

// RoleResolver looks up roles by name at assignment time.
type RoleResolver interface {
	GetByName(ctx context.Context, name string) (roles.Role, error)
}

// Service handles role assignment ledger business logic. Resolution always
// joins through the role's current permission set: editing a role changes
// what every assignee can do, immediately. This is the deliberate opposite
// of the grant ledger's snapshot expansion.
type Service struct {
	repo  Repository
	roles RoleResolver
	clock func() time.Time
}

// NewService builds a Service instance. A nil clock means time.Now.
func NewService(repo Repository, roleResolver RoleResolver, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, roles: roleResolver, clock: clock}
}

// Assign links the user to the named role. An unexpired assignment of the
// same pair conflicts; expired rows never block reassignment.
func (s *Service) Assign(ctx context.Context, userID int64, req AssignRoleRequest) (UserRoleAssignment, error) {
	role, err := s.roles.GetByName(ctx, req.RoleName)
	if err != nil {
		return UserRoleAssignment{}, fmt.Errorf("resolve role %q: %w", req.RoleName, err)
	}

	now := s.clock()
	active, err := s.repo.HasActive(ctx, userID, role.ID, now)
	if err != nil {
		return UserRoleAssignment{}, fmt.Errorf("check active assignment: %w", err)
	}
	if active {
		return UserRoleAssignment{}, fmt.Errorf("%w: user %d already holds role %q", ErrAlreadyAssigned, userID, role.Name)
	}

	row := UserRoleAssignment{
		UserID:     userID,
		Role:       role,
		AssignedAt: now,
		AssignedBy: req.AssignedBy,
		ExpiresAt:  req.ExpiresAt,
	}
	row, err = s.repo.Create(ctx, row)
	if err != nil {
		return UserRoleAssignment{}, fmt.Errorf("create assignment: %w", err)
	}
	return row, nil
}

// ListUserRoles returns the user's unexpired assignments with each role's
// current permission set.
func (s *Service) ListUserRoles(ctx context.Context, userID int64) ([]UserRoleAssignment, error) {
	return s.repo.ListActiveByUser(ctx, userID, s.clock())
}

// ListUserPermissions returns the union of permission sets across the
// user's active assignments, deduplicated by permission ID. Order is not
// defined beyond first appearance.
func (s *Service) ListUserPermissions(ctx context.Context, userID int64) ([]permissions.Permission, error) {
	assigned, err := s.repo.ListActiveByUser(ctx, userID, s.clock())
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	out := []permissions.Permission{}
	for _, a := range assigned {
		for _, p := range a.Role.Permissions {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out, nil
}

// HasPermission reports whether any of the user's active assignments
// conveys the named permission through its role's current set.
func (s *Service) HasPermission(ctx context.Context, userID int64, permissionName string) (bool, error) {
	assigned, err := s.repo.ListActiveByUser(ctx, userID, s.clock())
	if err != nil {
		return false, err
	}
	for _, a := range assigned {
		for _, p := range a.Role.Permissions {
			if p.Name == permissionName {
				return true, nil
			}
		}
	}
	return false, nil
}

// Revoke removes the user's assignment of the role. Revoking an absent
// pair is a no-op.
func (s *Service) Revoke(ctx context.Context, userID, roleID int64) error {
	return s.repo.Delete(ctx, userID, roleID)
}

// RevokeAll removes every assignment for the user, expired ones included.
func (s *Service) RevokeAll(ctx context.Context, userID int64) error {
	return s.repo.DeleteByUser(ctx, userID)
}
