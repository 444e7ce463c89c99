package assignments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smauel/access/internal/permissions"
	"github.com/smauel/access/internal/roles"
)

type assignmentRow struct {
	id         int64
	userID     int64
	roleID     int64
	assignedAt time.Time
	assignedBy int64
	expiresAt  *time.Time
}

// mockRepository stores role links only and re-reads role contents from the
// shared role store on every list, the way the SQL join does.
type mockRepository struct {
	nextID int64
	rows   map[int64]assignmentRow
	store  *roleStore
}

func newMockRepository(store *roleStore) *mockRepository {
	return &mockRepository{nextID: 1, rows: map[int64]assignmentRow{}, store: store}
}

func (m *mockRepository) Create(ctx context.Context, row UserRoleAssignment) (UserRoleAssignment, error) {
	row.ID = m.nextID
	m.rows[row.ID] = assignmentRow{
		id:         row.ID,
		userID:     row.UserID,
		roleID:     row.Role.ID,
		assignedAt: row.AssignedAt,
		assignedBy: row.AssignedBy,
		expiresAt:  row.ExpiresAt,
	}
	m.nextID++
	return row, nil
}

func (m *mockRepository) HasActive(ctx context.Context, userID, roleID int64, now time.Time) (bool, error) {
	for _, row := range m.rows {
		if row.userID == userID && row.roleID == roleID &&
			(row.expiresAt == nil || row.expiresAt.After(now)) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]UserRoleAssignment, error) {
	out := []UserRoleAssignment{}
	for id := int64(1); id < m.nextID; id++ {
		row, ok := m.rows[id]
		if !ok || row.userID != userID {
			continue
		}
		if row.expiresAt != nil && !row.expiresAt.After(now) {
			continue
		}
		role, ok := m.store.byID[row.roleID]
		if !ok {
			continue
		}
		out = append(out, UserRoleAssignment{
			ID:         row.id,
			UserID:     row.userID,
			Role:       role,
			AssignedAt: row.assignedAt,
			AssignedBy: row.assignedBy,
			ExpiresAt:  row.expiresAt,
		})
	}
	return out, nil
}

func (m *mockRepository) Delete(ctx context.Context, userID, roleID int64) error {
	for id, row := range m.rows {
		if row.userID == userID && row.roleID == roleID {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *mockRepository) DeleteByUser(ctx context.Context, userID int64) error {
	for id, row := range m.rows {
		if row.userID == userID {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *mockRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	for id, row := range m.rows {
		if row.expiresAt != nil && row.expiresAt.Before(cutoff) {
			delete(m.rows, id)
			purged++
		}
	}
	return purged, nil
}

type roleStore struct {
	byID   map[int64]roles.Role
	byName map[string]int64
}

func (s *roleStore) GetByName(ctx context.Context, name string) (roles.Role, error) {
	id, ok := s.byName[name]
	if !ok {
		return roles.Role{}, roles.ErrNotFound
	}
	return s.byID[id], nil
}

var baseTime = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

var (
	viewUsers  = permissions.Permission{ID: 1, Name: "viewUsers", Type: permissions.TypeResource, Resource: "user", Action: permissions.ActionRead}
	updateUser = permissions.Permission{ID: 2, Name: "updateUser", Type: permissions.TypeResource, Resource: "user", Action: permissions.ActionUpdate}
	adminOnly  = permissions.Permission{ID: 3, Name: "adminAccess", Type: permissions.TypeSystem}
)

func newTestService(now *time.Time) (*Service, *mockRepository, *roleStore) {
	store := &roleStore{
		byID: map[int64]roles.Role{
			10: {ID: 10, Name: "USER", Permissions: []permissions.Permission{viewUsers}},
			11: {ID: 11, Name: "MODERATOR", Permissions: []permissions.Permission{viewUsers, updateUser}},
			12: {ID: 12, Name: "ADMIN", Permissions: []permissions.Permission{viewUsers, updateUser, adminOnly}},
		},
		byName: map[string]int64{"USER": 10, "MODERATOR": 11, "ADMIN": 12},
	}
	repo := newMockRepository(store)
	svc := NewService(repo, store, func() time.Time { return *now })
	return svc, repo, store
}

func TestAssign(t *testing.T) {
	now := baseTime
	svc, _, _ := newTestService(&now)

	row, err := svc.Assign(context.Background(), 7, AssignRoleRequest{RoleName: "USER", AssignedBy: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(7), row.UserID)
	assert.Equal(t, "USER", row.Role.Name)
	assert.Equal(t, baseTime, row.AssignedAt)
	assert.Equal(t, int64(1), row.AssignedBy)
}

func TestAssignUnknownRole(t *testing.T) {
	now := baseTime
	svc, _, _ := newTestService(&now)

	_, err := svc.Assign(context.Background(), 7, AssignRoleRequest{RoleName: "NOPE", AssignedBy: 1})
	require.ErrorIs(t, err, roles.ErrNotFound)
}

func TestAssignActiveDuplicateConflicts(t *testing.T) {
	now := baseTime
	svc, _, _ := newTestService(&now)

	_, err := svc.Assign(context.Background(), 7, AssignRoleRequest{RoleName: "USER", AssignedBy: 1})
	require.NoError(t, err)

	_, err = svc.Assign(context.Background(), 7, AssignRoleRequest{RoleName: "USER", AssignedBy: 1})
	require.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestAssignExpiredRowDoesNotBlock(t *testing.T) {
	now := baseTime
	svc, _, _ := newTestService(&now)

	expires := baseTime.Add(time.Hour)
	_, err := svc.Assign(context.Background(), 7, AssignRoleRequest{
		RoleName:   "USER",
		AssignedBy: 1,
		ExpiresAt:  &expires,
	})
	require.NoError(t, err)

	now = baseTime.Add(2 * time.Hour)
	_, err = svc.Assign(context.Background(), 7, AssignRoleRequest{RoleName: "USER", AssignedBy: 1})
	require.NoError(t, err)
}

func TestListUserPermissionsUnion(t *testing.T) {
	now := baseTime
	svc, _, _ := newTestService(&now)

	_, err := svc.Assign(context.Background(), 7, AssignRoleRequest{RoleName: "USER", AssignedBy: 1})
	require.NoError(t, err)
	_, err = svc.Assign(context.Background(), 7, AssignRoleRequest{RoleName: "MODERATOR", AssignedBy: 1})
	require.NoError(t, err)

	perms, err := svc.ListUserPermissions(context.Background(), 7)
	require.NoError(t, err)

	// viewUsers appears in both roles but the union holds it once.
	require.Len(t, perms, 2)
	names := []string{perms[0].Name, perms[1].Name}
	assert.ElementsMatch(t, []string{"viewUsers", "updateUser"}, names)
}

func TestHasPermissionSeesLiveRoleEdits(t *testing.T) {
	now := baseTime
	svc, _, store := newTestService(&now)

	_, err := svc.Assign(context.Background(), 7, AssignRoleRequest{RoleName: "USER", AssignedBy: 1})
	require.NoError(t, err)

	has, err := svc.HasPermission(context.Background(), 7, "updateUser")
	require.NoError(t, err)
	assert.False(t, has)

	// Add a permission to the role after assignment; resolution picks it
	// up immediately because assignments join the role's current set.
	role := store.byID[10]
	role.Permissions = append(role.Permissions, updateUser)
	store.byID[10] = role

	has, err = svc.HasPermission(context.Background(), 7, "updateUser")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestListUserRolesFiltersExpired(t *testing.T) {
	now := baseTime
	svc, _, _ := newTestService(&now)

	expires := baseTime.Add(time.Hour)
	_, err := svc.Assign(context.Background(), 7, AssignRoleRequest{
		RoleName:   "ADMIN",
		AssignedBy: 1,
		ExpiresAt:  &expires,
	})
	require.NoError(t, err)
	_, err = svc.Assign(context.Background(), 7, AssignRoleRequest{RoleName: "USER", AssignedBy: 1})
	require.NoError(t, err)

	now = baseTime.Add(2 * time.Hour)
	assigned, err := svc.ListUserRoles(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "USER", assigned[0].Role.Name)

	has, err := svc.HasPermission(context.Background(), 7, "adminAccess")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestExpiredAssignmentPersistsUntilRevoked(t *testing.T) {
	now := baseTime
	svc, repo, _ := newTestService(&now)

	expires := baseTime.Add(time.Hour)
	_, err := svc.Assign(context.Background(), 7, AssignRoleRequest{
		RoleName:   "USER",
		AssignedBy: 1,
		ExpiresAt:  &expires,
	})
	require.NoError(t, err)

	now = baseTime.Add(48 * time.Hour)
	assigned, err := svc.ListUserRoles(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, assigned)
	assert.Len(t, repo.rows, 1)

	require.NoError(t, svc.RevokeAll(context.Background(), 7))
	assert.Empty(t, repo.rows)
}

func TestRevokeIdempotent(t *testing.T) {
	now := baseTime
	svc, _, _ := newTestService(&now)

	_, err := svc.Assign(context.Background(), 7, AssignRoleRequest{RoleName: "USER", AssignedBy: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), 7, 10))
	require.NoError(t, svc.Revoke(context.Background(), 7, 10))
	require.NoError(t, svc.Revoke(context.Background(), 99, 10))
}
