package users

import (
	"context"
	"testing"

	"github.com/apiarycd/memberships/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T, config Config) (*Service, storage.Provider) {
	t.Helper()

	provider := storage.NewMemoryProvider(zaptest.NewLogger(t))

	users, err := NewRepository(provider)
	require.NoError(t, err)
	roles, err := NewRoleRepository(provider)
	require.NoError(t, err)

	return NewService(users, roles, config, zaptest.NewLogger(t)), provider
}

func TestService_Seed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, Config{Seed: []SeedUser{
		{Username: "admin", Email: "admin@example.com", Role: "admin"},
		{Username: "jane", Email: "jane@example.com", Role: "member"},
		{Username: "john", Email: "john@example.com", Role: "member"},
		{Username: "guest", Email: "guest@example.com", Role: ""},
	}})

	require.NoError(t, svc.Seed(ctx))
	require.NoError(t, svc.Seed(ctx), "seeding is skipped once users exist")

	all, err := svc.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)

	assert.Equal(t, "admin", all[0].User.Username)
	require.NotNil(t, all[0].Role)
	assert.Equal(t, "admin", all[0].Role.Name)

	require.NotNil(t, all[1].Role)
	require.NotNil(t, all[2].Role)
	assert.Equal(t, all[1].Role.ID, all[2].Role.ID, "roles are shared by name")

	assert.Nil(t, all[3].Role)

	roles, err := svc.roles.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}

func TestService_GetUserByID(t *testing.T) {
	ctx := context.Background()
	svc, provider := newTestService(t, Config{Seed: []SeedUser{
		{Username: "admin", Email: "admin@example.com", Role: "admin"},
	}})
	require.NoError(t, svc.Seed(ctx))

	found, ok, err := svc.GetUserByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", found.User.Email)
	require.NotNil(t, found.Role)
	assert.Equal(t, "admin", found.Role.Name)

	_, ok, err = svc.GetUserByID(ctx, 2000)
	require.NoError(t, err)
	assert.False(t, ok)

	// a dangling role reference yields a user without role
	_, err = provider.Create(ctx, CollectionUsers, storage.Record{"uuid": "u-2", "username": "orphan", "roleId": 42})
	require.NoError(t, err)

	orphan, ok, err := svc.GetUserByID(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, orphan.Role)
}
