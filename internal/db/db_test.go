package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsUpDown(t *testing.T) {
	ctx := context.Background()
	database, err := Init("sqlite", filepath.Join(t.TempDir(), "nested", "m.db"))
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	latest, err := Latest()
	require.NoError(t, err)
	assert.Equal(t, int64(3), latest)

	require.NoError(t, RunMigrations(ctx, database.DB, "sqlite"))

	version, err := Version(ctx, database.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, latest, version)

	require.NoError(t, MigrateDown(ctx, database.DB, "sqlite"))
	version, err = Version(ctx, database.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, latest-1, version)

	// Running up again is idempotent.
	require.NoError(t, RunMigrations(ctx, database.DB, "sqlite"))
	require.NoError(t, RunMigrations(ctx, database.DB, "sqlite"))
	version, err = Version(ctx, database.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, latest, version)
}

func TestSQLiteForeignKeysEnabled(t *testing.T) {
	database, err := Init("sqlite", filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	var enabled int
	require.NoError(t, database.Get(&enabled, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, enabled)
}

func TestWithSQLitePragma(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)", withSQLitePragma("a.db", "foreign_keys", "1"))
	assert.Equal(t, "a.db?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		withSQLitePragma("a.db?_pragma=journal_mode(WAL)", "foreign_keys", "1"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(0)", withSQLitePragma("a.db?_pragma=foreign_keys(0)", "foreign_keys", "1"))
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "not configured", Status(ctx, nil))

	database, err := Init("sqlite", filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	assert.Equal(t, "connected", Status(ctx, database))

	require.NoError(t, database.Close())
	assert.Contains(t, Status(ctx, database), "error:")
}

func TestGetDialect(t *testing.T) {
	assert.Equal(t, "sqlite3", getDialect("sqlite"))
	assert.Equal(t, "postgres", getDialect("pgx"))
	assert.Equal(t, "mysql", getDialect("mysql"))
}
