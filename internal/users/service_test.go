package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	nextID int64
	users  map[int64]User
	byName map[string]int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1, users: map[int64]User{}, byName: map[string]int64{}}
}

func (m *mockRepository) Create(ctx context.Context, user User) (User, error) {
	if _, ok := m.byName[user.Username]; ok {
		return User{}, ErrAlreadyExists
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.nextID++
	m.users[user.ID] = user
	m.byName[user.Username] = user.ID
	return user, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (User, error) {
	user, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (m *mockRepository) GetByUsername(ctx context.Context, username string) (User, error) {
	id, ok := m.byName[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return m.users[id], nil
}

func (m *mockRepository) List(ctx context.Context) ([]User, error) {
	out := []User{}
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, nil
}

func (m *mockRepository) Update(ctx context.Context, user User) (User, error) {
	stored, ok := m.users[user.ID]
	if !ok {
		return User{}, ErrNotFound
	}
	stored.FullName = user.FullName
	stored.Email = user.Email
	stored.UpdatedAt = time.Now()
	m.users[user.ID] = stored
	return stored, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	user, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byName, user.Username)
	delete(m.users, id)
	return nil
}

func newTestService() *Service {
	return NewService(newMockRepository())
}

func TestCreateUser(t *testing.T) {
	svc := newTestService()

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "jdoe",
		FullName: "Jane Doe",
		Email:    "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "Jane Doe", user.FullName)
}

func TestCreateUserValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), CreateUserRequest{Username: "  "})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), CreateUserRequest{Username: "jdoe"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserRequest{Username: "jdoe"})
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestUpdateUserIgnoresBlankFields(t *testing.T) {
	svc := newTestService()

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "jdoe",
		FullName: "Jane Doe",
		Email:    "jane@example.com",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), user.ID, UpdateUserRequest{
		Email: "jane.doe@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.FullName)
	assert.Equal(t, "jane.doe@example.com", updated.Email)
}

func TestUpdateUserUnknown(t *testing.T) {
	svc := newTestService()

	_, err := svc.Update(context.Background(), 404, UpdateUserRequest{FullName: "Nobody"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserStrict(t *testing.T) {
	svc := newTestService()

	user, err := svc.Create(context.Background(), CreateUserRequest{Username: "jdoe"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), user.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), user.ID), ErrNotFound)
}
