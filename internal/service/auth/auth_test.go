package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationaryhq/stationary/internal/domain/models"
	"github.com/stationaryhq/stationary/internal/repository/localstore"
)

func newTestStore(t *testing.T) localstore.Store {
	t.Helper()
	s, err := localstore.New(filepath.Join(t.TempDir(), "data.json"), nil)
	require.NoError(t, err)
	return s
}

func TestDefaultAdminLogin(t *testing.T) {
	store, err := NewStore(newTestStore(t), nil)
	require.NoError(t, err)

	user, err := store.Login("admin", "123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, models.RoleAdmin, user.Role)

	current, ok := store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user.ID, current.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	store, err := NewStore(newTestStore(t), nil)
	require.NoError(t, err)

	_, err = store.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok := store.CurrentUser()
	assert.False(t, ok)
}

func TestLoginUnknownUser(t *testing.T) {
	store, err := NewStore(newTestStore(t), nil)
	require.NoError(t, err)

	_, err = store.Login("ghost", "123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginIsCaseInsensitive(t *testing.T) {
	store, err := NewStore(newTestStore(t), nil)
	require.NoError(t, err)

	user, err := store.Login("ADMIN", "123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
}

func TestLogout(t *testing.T) {
	store, err := NewStore(newTestStore(t), nil)
	require.NoError(t, err)

	_, err = store.Login("admin", "123")
	require.NoError(t, err)

	store.Logout()
	_, ok := store.CurrentUser()
	assert.False(t, ok)
}

func TestAddUser(t *testing.T) {
	store, err := NewStore(newTestStore(t), nil)
	require.NoError(t, err)

	user, err := store.AddUser("jane", "secret", models.RoleUser)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret", user.PasswordHash, "passwords are never stored in the clear")

	logged, err := store.Login("jane", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestAddUserDuplicateUsername(t *testing.T) {
	store, err := NewStore(newTestStore(t), nil)
	require.NoError(t, err)

	_, err = store.AddUser("Admin", "pw", models.RoleUser)
	assert.ErrorIs(t, err, ErrUsernameTaken, "uniqueness check ignores case")
}

func TestAddUserEmptyFields(t *testing.T) {
	store, err := NewStore(newTestStore(t), nil)
	require.NoError(t, err)

	_, err = store.AddUser("", "pw", models.RoleUser)
	assert.Error(t, err)
	_, err = store.AddUser("jane", "", models.RoleUser)
	assert.Error(t, err)
}

func TestDeleteUser(t *testing.T) {
	store, err := NewStore(newTestStore(t), nil)
	require.NoError(t, err)

	user, err := store.AddUser("jane", "pw", models.RoleUser)
	require.NoError(t, err)

	require.NoError(t, store.DeleteUser(user.ID))
	assert.Len(t, store.Users(), 1)

	assert.NoError(t, store.DeleteUser("missing"), "deleting an absent id is a no-op")
}

func TestDeleteUserProtectsPrimaryAdmin(t *testing.T) {
	store, err := NewStore(newTestStore(t), nil)
	require.NoError(t, err)

	users := store.Users()
	require.Len(t, users, 1)
	assert.ErrorIs(t, store.DeleteUser(users[0].ID), ErrProtectedUser)
}

func TestSessionSurvivesReload(t *testing.T) {
	backing := newTestStore(t)

	store, err := NewStore(backing, nil)
	require.NoError(t, err)
	_, err = store.Login("admin", "123")
	require.NoError(t, err)

	reloaded, err := NewStore(backing, nil)
	require.NoError(t, err)

	current, ok := reloaded.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "admin", current.Username)
}

func TestUsersSurviveReload(t *testing.T) {
	backing := newTestStore(t)

	store, err := NewStore(backing, nil)
	require.NoError(t, err)
	_, err = store.AddUser("jane", "pw", models.RoleUser)
	require.NoError(t, err)

	reloaded, err := NewStore(backing, nil)
	require.NoError(t, err)
	assert.Len(t, reloaded.Users(), 2)
}
