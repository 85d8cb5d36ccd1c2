package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgw/authgw/internal/db/models"
	"github.com/authgw/authgw/internal/db/repository"
)

func TestLocalBackend(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUsers(db)
	backend := NewLocalBackend(users)

	user, err := backend.CreateUser("admin", "admin@corp", "changeme", "Ada", "Admin", true)
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
	assert.NotEqual(t, "changeme", user.Password)

	_, err = backend.CreateUser("admin", "", "other", "", "", false)
	assert.ErrorIs(t, err, ErrUserNameExists)

	_, err = backend.CreateUser("nopw", "", "", "", "", false)
	assert.ErrorIs(t, err, ErrPasswordEmpty)

	result, err := backend.Authenticate("admin", "changeme")
	require.NoError(t, err)
	assert.Equal(t, Accepted, result.Outcome)
	assert.NotNil(t, result.User.LastLogin)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"unknown user", "ghost", "changeme"},
		{"empty password", "admin", ""},
		{"empty username", "", "changeme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := backend.Authenticate(tt.username, tt.password)
			require.NoError(t, err)
			assert.Equal(t, Deferred, result.Outcome)
		})
	}
}

func TestLocalBackendSkipsDirectoryAndDisabledUsers(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUsers(db)
	backend := NewLocalBackend(users)

	hash, err := models.HashPassword("pw")
	require.NoError(t, err)

	require.NoError(t, users.Create(&models.User{Username: "ldapuser", Password: hash, Active: true, AuthSource: models.AuthSourceLDAP}))
	require.NoError(t, users.Create(&models.User{Username: "disabled", Password: hash, Active: false, AuthSource: models.AuthSourceLocal}))

	for _, name := range []string{"ldapuser", "disabled"} {
		result, err := backend.Authenticate(name, "pw")
		require.NoError(t, err)
		assert.Equal(t, Deferred, result.Outcome, name)
	}
}
