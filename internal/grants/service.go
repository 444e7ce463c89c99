package grants

import (
	"context"
	"fmt"
	"time"

	"github.com/smauel/access/internal/permissions"
	"github.com/smauel/access/internal/roles"
)

// PermissionResolver looks up catalog permissions by name at grant time.
type PermissionResolver interface {
	GetByName(ctx context.Context, name string) (permissions.Permission, error)
}

// RoleResolver loads a role with its permission set for snapshot expansion.
type RoleResolver interface {
	GetByName(ctx context.Context, name string) (roles.Role, error)
}

// Service handles direct grant ledger business logic. Every operation takes
// a single reading of the clock so expiry checks within one call are
// consistent.
type Service struct {
	repo  Repository
	perms PermissionResolver
	roles RoleResolver
	clock func() time.Time
}

// NewService builds a Service instance. A nil clock means time.Now.
func NewService(repo Repository, perms PermissionResolver, roleResolver RoleResolver, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, perms: perms, roles: roleResolver, clock: clock}
}

// Grant records a direct permission grant for the user. The permission is
// resolved by name and the stored row carries no role reference.
func (s *Service) Grant(ctx context.Context, userID int64, req GrantPermissionRequest) (UserPermission, error) {
	perm, err := s.perms.GetByName(ctx, req.PermissionName)
	if err != nil {
		return UserPermission{}, fmt.Errorf("resolve permission %q: %w", req.PermissionName, err)
	}

	row := UserPermission{
		UserID:     userID,
		Permission: perm,
		ExpiresAt:  req.ExpiresAt,
		GrantedAt:  s.clock(),
		GrantedBy:  req.GrantedBy,
	}
	row, err = s.repo.Create(ctx, row)
	if err != nil {
		return UserPermission{}, fmt.Errorf("create grant: %w", err)
	}
	return row, nil
}

// GrantRole expands the role's current permission set into one ledger row
// per permission, all sharing the same expiry and grantor and referencing
// the source role. The expansion is a snapshot: rows keep the permissions
// the role held at this moment even if the role changes later. A role with
// an empty permission set yields no rows.
func (s *Service) GrantRole(ctx context.Context, userID int64, req GrantRoleRequest) ([]UserPermission, error) {
	role, err := s.roles.GetByName(ctx, req.RoleName)
	if err != nil {
		return nil, fmt.Errorf("resolve role %q: %w", req.RoleName, err)
	}
	if len(role.Permissions) == 0 {
		return []UserPermission{}, nil
	}

	now := s.clock()
	ref := &RoleRef{ID: role.ID, Name: role.Name}
	rows := make([]UserPermission, 0, len(role.Permissions))
	for _, perm := range role.Permissions {
		rows = append(rows, UserPermission{
			UserID:     userID,
			Permission: perm,
			Role:       ref,
			ExpiresAt:  req.ExpiresAt,
			GrantedAt:  now,
			GrantedBy:  req.GrantedBy,
		})
	}
	rows, err = s.repo.CreateBatch(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("create grants for role %q: %w", req.RoleName, err)
	}
	return rows, nil
}

// ListActive returns the user's unexpired ledger rows. Expired rows are
// filtered, not deleted; they stay in the ledger until revoked or purged.
func (s *Service) ListActive(ctx context.Context, userID int64) ([]UserPermission, error) {
	return s.repo.ListActive(ctx, userID, s.clock())
}

// HasPermission reports whether the user holds an unexpired direct grant
// for the named permission. Only ledger rows count; roles assigned through
// the assignment ledger are not consulted here.
func (s *Service) HasPermission(ctx context.Context, userID int64, permissionName string) (bool, error) {
	return s.repo.HasActive(ctx, userID, permissionName, s.clock())
}

// Revoke removes a single ledger row. Revoking an absent row is a no-op.
func (s *Service) Revoke(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// RevokeAll removes every ledger row for the user, expired ones included.
func (s *Service) RevokeAll(ctx context.Context, userID int64) error {
	return s.repo.DeleteByUser(ctx, userID)
}
