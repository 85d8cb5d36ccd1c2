package daemon

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/authgw/authgw/internal/auth"
	"github.com/authgw/authgw/internal/config"
	"github.com/authgw/authgw/internal/db/models"
	"github.com/authgw/authgw/internal/db/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	return db
}

func TestSeedCreatesAllowlistedGroups(t *testing.T) {
	db := setupTestDB(t)

	cfg := &config.Config{
		Auth:      config.Auth{Directory: true},
		Directory: config.Directory{AuthenticatedGroups: []any{"staff", "Admins"}},
	}

	require.NoError(t, seed(cfg, db))
	// idempotent
	require.NoError(t, seed(cfg, db))

	groups, err := repository.NewUsers(db).ListGroups()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "ADMINS", groups[0].Name)
	assert.Equal(t, "STAFF", groups[1].Name)
}

func TestSeedSkipsWithoutDirectory(t *testing.T) {
	db := setupTestDB(t)

	cfg := &config.Config{
		Auth:      config.Auth{LocalDB: true},
		Directory: config.Directory{AuthenticatedGroups: "STAFF"},
	}

	require.NoError(t, seed(cfg, db))

	groups, err := repository.NewUsers(db).ListGroups()
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestNewChain(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name string
		auth config.Auth
		want int
	}{
		{name: "none", want: 0},
		{name: "local", auth: config.Auth{LocalDB: true}, want: 1},
		{name: "directory", auth: config.Auth{Directory: true}, want: 1},
		{name: "both", auth: config.Auth{LocalDB: true, Directory: true}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain(&config.Config{Auth: tt.auth}, db)
			assert.Equal(t, tt.want, chain.Len())
		})
	}
}

func TestNewChainLocalLogin(t *testing.T) {
	db := setupTestDB(t)

	local := auth.NewLocalBackend(repository.NewUsers(db))
	_, err := local.CreateUser("admin", "admin@example.org", "changeme", "Ad", "Min", true)
	require.NoError(t, err)

	chain := NewChain(&config.Config{Auth: config.Auth{LocalDB: true}}, db)

	result, err := chain.Authenticate("admin", "changeme")
	require.NoError(t, err)
	assert.Equal(t, auth.Accepted, result.Outcome)
	require.NotNil(t, result.User)
	assert.True(t, result.User.IsSuperuser)

	result, err = chain.Authenticate("admin", "wrong")
	require.NoError(t, err)
	assert.Equal(t, auth.Deferred, result.Outcome)
}

func TestNewRejectsNilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
