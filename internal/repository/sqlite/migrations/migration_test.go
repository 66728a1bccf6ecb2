package migrations

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, kind, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?", kind, name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.Up)
		assert.NotEmpty(t, m.Down)
	}
	assert.Equal(t, "create_task_logs", migrations[0].Name)
}

func TestRunMigrations_CreatesSchema(t *testing.T) {
	db := openMemoryDB(t)

	require.NoError(t, RunMigrations(db))

	assert.True(t, tableExists(t, db, "table", "task_logs"))
	assert.True(t, tableExists(t, db, "table", "registered_users"))
	for _, idx := range []string{
		"idx_task_logs_user",
		"idx_task_logs_team",
		"idx_task_logs_status",
		"idx_task_logs_dates",
		"idx_task_logs_created_at",
	} {
		assert.True(t, tableExists(t, db, "index", idx), idx)
	}
	assert.True(t, tableExists(t, db, "trigger", "trg_task_logs_created_at_immutable"))
	assert.True(t, tableExists(t, db, "trigger", "trg_task_logs_id_immutable"))
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openMemoryDB(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 3, count)
}

func TestRunMigrations_DirtyDatabase(t *testing.T) {
	db := openMemoryDB(t)

	// Create migrations table
	_, err := db.Exec(`
		CREATE TABLE migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			dirty BOOLEAN DEFAULT FALSE
		)
	`)
	require.NoError(t, err)

	// Mark a migration as dirty
	_, err = db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	require.NoError(t, err)

	// Try to run migrations - should fail due to dirty state
	err = RunMigrations(db)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "database is in a dirty state"), err.Error())
	assert.True(t, strings.Contains(err.Error(), "failed migration(s): [1]"), err.Error())
}

func TestRunMigrations_FailureMarksDirty(t *testing.T) {
	db := openMemoryDB(t)

	require.NoError(t, RunMigrations(db))
	_, err := RollbackLast(db)
	require.NoError(t, err)
	_, err = RollbackLast(db)
	require.NoError(t, err)

	// A table squatting on an index name makes migration 2 fail
	_, err = db.Exec("CREATE TABLE idx_task_logs_dates (id INTEGER)")
	require.NoError(t, err)

	err = RunMigrations(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to apply migration 2")

	err = RunMigrations(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed migration(s): [2]")
}

func TestRollbackLast(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, RunMigrations(db))

	version, err := RollbackLast(db)
	require.NoError(t, err)
	assert.Equal(t, 3, version)
	assert.False(t, tableExists(t, db, "trigger", "trg_task_logs_created_at_immutable"))
	assert.True(t, tableExists(t, db, "table", "task_logs"))

	// Re-running restores what was reverted
	require.NoError(t, RunMigrations(db))
	assert.True(t, tableExists(t, db, "trigger", "trg_task_logs_created_at_immutable"))
}

func TestRollbackLast_NothingApplied(t *testing.T) {
	db := openMemoryDB(t)

	version, err := RollbackLast(db)
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestRunMigrations_FileDatabasePreservesData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE test_data (id INTEGER PRIMARY KEY, value TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO test_data (value) VALUES ('original data')`)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM test_data").Scan(&count))
	assert.Equal(t, 1, count)
}
