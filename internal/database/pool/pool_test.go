package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func maxOpen(t *testing.T, db *gorm.DB) int {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	return sqlDB.Stats().MaxOpenConnections
}

func TestDefaultPoolConfig(t *testing.T) {
	cfg := DefaultPoolConfig()
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 10*time.Minute, cfg.ConnMaxIdleTime)
}

func TestSetupConnectionPool(t *testing.T) {
	t.Run("applies limits", func(t *testing.T) {
		db := openSQLite(t)

		err := SetupConnectionPool(db, Config{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Minute,
			ConnMaxIdleTime: time.Minute,
		})
		require.NoError(t, err)
		assert.Equal(t, 10, maxOpen(t, db))
	})

	t.Run("idle may equal open", func(t *testing.T) {
		db := openSQLite(t)

		err := SetupConnectionPool(db, Config{MaxOpenConns: 8, MaxIdleConns: 8})
		require.NoError(t, err)
		assert.Equal(t, 8, maxOpen(t, db))
	})

	t.Run("zero idle is allowed", func(t *testing.T) {
		db := openSQLite(t)
		assert.NoError(t, SetupConnectionPool(db, Config{MaxOpenConns: 4, MaxIdleConns: 0}))
	})
}

func TestSetupConnectionPool_Validation(t *testing.T) {
	db := openSQLite(t)

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"zero open conns", Config{MaxOpenConns: 0, MaxIdleConns: 5}, "MaxOpenConns must be greater than 0"},
		{"negative open conns", Config{MaxOpenConns: -1, MaxIdleConns: 5}, "MaxOpenConns must be greater than 0"},
		{"negative idle conns", Config{MaxOpenConns: 10, MaxIdleConns: -1}, "MaxIdleConns must be non-negative"},
		{"idle exceeds open", Config{MaxOpenConns: 5, MaxIdleConns: 10}, "cannot be greater than MaxOpenConns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetupConnectionPool(db, tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
