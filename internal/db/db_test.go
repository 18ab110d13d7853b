package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	assert.NoError(t, db.Ping())
}

func TestMigrationsApply(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	for _, table := range []string{"service_types", "service_teams", "service_records", "seed_markers"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenTwiceIsNoChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldlog.db")

	first, err := Open(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO service_teams (id, name) VALUES ('t9', 'Crew Z')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, second.Close()) })

	var name string
	require.NoError(t, second.QueryRow(`SELECT name FROM service_teams WHERE id = 't9'`).Scan(&name))
	assert.Equal(t, "Crew Z", name)
}

func TestOpenFailsForMissingDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "fieldlog.db"))
	assert.Error(t, err)
}
