package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgw/authgw/internal/config"
	"github.com/authgw/authgw/internal/db/models"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		engine string
		name   string
	}{
		{config.EngineMySQL, "mysql"},
		{config.EnginePostgres, "postgres"},
		{config.EngineSQLite, "sqlite"},
		{"", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(config.DB{GormEngine: tt.engine})
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())
		})
	}

	_, err := Dialector(config.DB{GormEngine: "oracle"})
	assert.ErrorIs(t, err, config.ErrUnknownGormEngine)
}

func TestOpenSQLite(t *testing.T) {
	db, err := Open(config.DB{GormEngine: config.EngineSQLite, Path: ":memory:"})
	require.NoError(t, err)

	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model))
	}
}
