package permissions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	nextID int64
	perms  map[int64]Permission
	byName map[string]int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1, perms: map[int64]Permission{}, byName: map[string]int64{}}
}

func (m *mockRepository) Create(ctx context.Context, p Permission) (Permission, error) {
	if _, ok := m.byName[p.Name]; ok {
		return Permission{}, ErrAlreadyExists
	}
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.nextID++
	m.perms[p.ID] = p
	m.byName[p.Name] = p.ID
	return p, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (Permission, error) {
	p, ok := m.perms[id]
	if !ok {
		return Permission{}, ErrNotFound
	}
	return p, nil
}

func (m *mockRepository) GetByName(ctx context.Context, name string) (Permission, error) {
	id, ok := m.byName[name]
	if !ok {
		return Permission{}, ErrNotFound
	}
	return m.perms[id], nil
}

func (m *mockRepository) List(ctx context.Context) ([]Permission, error) {
	out := []Permission{}
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.perms[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) ListByResource(ctx context.Context, resource string) ([]Permission, error) {
	out := []Permission{}
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.perms[id]; ok && p.Resource == resource {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) ListByTypeAndResource(ctx context.Context, ptype Type, resource string) ([]Permission, error) {
	out := []Permission{}
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.perms[id]; ok && p.Type == ptype && p.Resource == resource {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	p, ok := m.perms[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byName, p.Name)
	delete(m.perms, id)
	return nil
}

func newTestService() *Service {
	return NewService(newMockRepository())
}

func TestCreatePermission(t *testing.T) {
	svc := newTestService()

	p, err := svc.Create(context.Background(), CreatePermissionRequest{
		Name:        "viewUsers",
		Description: "View user accounts",
		Type:        TypeResource,
		Resource:    "user",
		Action:      ActionRead,
	})
	require.NoError(t, err)
	assert.Equal(t, "viewUsers", p.Name)
	assert.Equal(t, TypeResource, p.Type)
	assert.Equal(t, ActionRead, p.Action)
}

func TestCreatePermissionValidation(t *testing.T) {
	svc := newTestService()

	cases := []struct {
		name string
		req  CreatePermissionRequest
	}{
		{"blank name", CreatePermissionRequest{Name: "  ", Type: TypeSystem}},
		{"missing type", CreatePermissionRequest{Name: "adminAccess"}},
		{"unknown type", CreatePermissionRequest{Name: "adminAccess", Type: "SUPER"}},
		{"unknown action", CreatePermissionRequest{Name: "viewUsers", Type: TypeResource, Action: "BROWSE"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreatePermissionDuplicateName(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), CreatePermissionRequest{Name: "adminAccess", Type: TypeSystem})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreatePermissionRequest{Name: "adminAccess", Type: TypeSystem})
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGetByName(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), CreatePermissionRequest{Name: "adminAccess", Type: TypeSystem})
	require.NoError(t, err)

	found, err := svc.GetByName(context.Background(), "adminAccess")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByName(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListByTypeAndResource(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), CreatePermissionRequest{Name: "viewUsers", Type: TypeResource, Resource: "user", Action: ActionRead})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreatePermissionRequest{Name: "exportReports", Type: TypeFeature, Resource: "report", Action: ActionExecute})
	require.NoError(t, err)

	list, err := svc.ListByTypeAndResource(context.Background(), TypeResource, "user")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "viewUsers", list[0].Name)

	_, err = svc.ListByTypeAndResource(context.Background(), "SUPER", "user")
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeletePermissionStrict(t *testing.T) {
	svc := newTestService()

	p, err := svc.Create(context.Background(), CreatePermissionRequest{Name: "adminAccess", Type: TypeSystem})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), p.ID), ErrNotFound)
}
