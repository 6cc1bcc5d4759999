package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schema = `
CREATE TABLE parents (id INTEGER PRIMARY KEY);
CREATE TABLE children (
	id INTEGER PRIMARY KEY,
	parent_id INTEGER NOT NULL REFERENCES parents(id)
);`

func TestOpenMemory(t *testing.T) {
	db, err := Open(Config{Path: MemoryPath})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, schema))
	_, err = db.Exec(`INSERT INTO parents (id) VALUES (1)`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM parents`).Scan(&n))
	assert.Equal(t, 1, n)

	// foreign_keys is on
	_, err = db.Exec(`INSERT INTO children (id, parent_id) VALUES (1, 42)`)
	assert.Error(t, err)
}

func TestOpenFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.db")
	db, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}

func TestMigrateError(t *testing.T) {
	db, err := Open(Config{Path: MemoryPath})
	require.NoError(t, err)
	defer db.Close()
	assert.Error(t, Migrate(db, `CREATE TABLE broken (`))
}
