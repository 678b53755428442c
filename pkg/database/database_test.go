package database

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"github.com/matinfathi/oo-backend/internal/model"
)

func sqliteConfig() Config {
	return Config{
		Driver:       DriverSQLite,
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on",
		MaxIdleConns: 2,
		LogLevel:     "silent",
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(Config{Driver: "mysql"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported")
}

func TestInitializer_SQLiteUpDown(t *testing.T) {
	ctx := context.Background()
	db, err := Open(sqliteConfig(), zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	initializer := NewInitializer(db, DriverSQLite, zap.NewNop())
	require.NoError(t, initializer.Up(ctx))

	for _, m := range model.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	version, dirty, err := initializer.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, initializer.Down(ctx, 0))
	for _, m := range model.All() {
		assert.False(t, db.Migrator().HasTable(m))
	}
}

func TestMigrationFS(t *testing.T) {
	up, err := fs.ReadFile(MigrationFS, "migrations/0001_init.up.sql")
	require.NoError(t, err)
	down, err := fs.ReadFile(MigrationFS, "migrations/0001_init.down.sql")
	require.NoError(t, err)

	for _, table := range []string{"users", "menus", "locations", "categories", "items", "option_groups", "options"} {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table+" (")
		assert.Contains(t, string(down), "DROP TABLE IF EXISTS "+table+";")
	}
	assert.Contains(t, string(up), "REFERENCES menus (id) ON DELETE RESTRICT")
	assert.Contains(t, string(up), "REFERENCES menus (id) ON DELETE CASCADE")

	// role / price_unit 使用命名枚举类型
	assert.Contains(t, string(up), "CREATE TYPE role_enum AS ENUM ('Customer', 'Owner', 'SuperAdmin')")
	assert.Contains(t, string(up), "CREATE TYPE currency_enum AS ENUM ('USD', 'CAD', 'EUR', 'GBP')")
	assert.Regexp(t, `role\s+role_enum\s+NOT NULL`, string(up))
	assert.Regexp(t, `price_unit\s+currency_enum\s+NOT NULL`, string(up))
	assert.NotContains(t, string(up), "VARCHAR(20)")
	assert.Contains(t, string(down), "DROP TYPE IF EXISTS role_enum;")
	assert.Contains(t, string(down), "DROP TYPE IF EXISTS currency_enum;")
	assert.Greater(t, strings.Index(string(down), "DROP TYPE IF EXISTS role_enum;"), strings.Index(string(down), "DROP TABLE IF EXISTS users;"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Info, parseLogLevel("INFO"))
	assert.Equal(t, logger.Error, parseLogLevel("error"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}
