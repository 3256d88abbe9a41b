package migrations

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEmbeddedMigrations(t *testing.T) {
	db := openTestDB(t)
	migrator := NewEmbeddedMigrator(db)

	migrations, err := migrator.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "001", migrations[0].Version)
	assert.Equal(t, "create profile tables", migrations[0].Description)
	assert.Equal(t, "002", migrations[1].Version)

	require.NoError(t, migrator.MigrateUp())
	// Applying again is a no-op
	require.NoError(t, migrator.MigrateUp())

	applied, err := migrator.GetAppliedMigrations()
	require.NoError(t, err)
	assert.True(t, applied["001"])
	assert.True(t, applied["002"])

	for _, table := range []string{"profiles", "transactions", "rounds", "hands"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	migrator := NewMigrator(openTestDB(t), dir)

	filePath, err := migrator.CreateMigration("add notes")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "001_add_notes.sql"), filePath)

	require.NoError(t, os.WriteFile(filePath, []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);"), 0644))

	second, err := migrator.CreateMigration("add tags")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "002_add_tags.sql"), second)
	require.NoError(t, os.WriteFile(second, []byte("CREATE TABLE tags (id INTEGER PRIMARY KEY);"), 0644))

	require.NoError(t, migrator.MigrateUp())
}

func TestEmbeddedMigrationsAreReadOnly(t *testing.T) {
	_, err := NewEmbeddedMigrator(openTestDB(t)).CreateMigration("nope")
	assert.Error(t, err)
}

func TestInvalidMigrationFilename(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.sql"), []byte("SELECT 1;"), 0644))

	_, err := NewMigrator(openTestDB(t), dir).LoadMigrations()
	assert.Error(t, err)
}
