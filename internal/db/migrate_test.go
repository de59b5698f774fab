package db

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	content := `-- users
CREATE TABLE a (id INT);

  -- index on a
CREATE INDEX idx_a ON a (id)
;
;
`
	require.Equal(t, []string{
		"CREATE TABLE a (id INT)",
		"CREATE INDEX idx_a ON a (id)",
	}, splitStatements(content))
	require.Empty(t, splitStatements("-- nothing here\n\n"))
}

func TestLoadMigrationsOrdersByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0002_b.sql":   {Data: []byte("CREATE TABLE b (id INT)")},
		"migrations/0001_a.sql":   {Data: []byte("CREATE TABLE a (id INT); CREATE INDEX ia ON a (id)")},
		"migrations/README.md":    {Data: []byte("ignored")},
		"migrations/nested/x.sql": {Data: []byte("CREATE TABLE x (id INT)")},
	}
	got, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "0001_a", got[0].version)
	require.Len(t, got[0].statements, 2)
	require.Equal(t, "0002_b", got[1].version)
}

func TestLoadMigrationsRejectsEmptyFile(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0001_a.sql": {Data: []byte("-- todo\n")},
	}
	_, err := loadMigrations(fsys)
	require.Error(t, err)
}

func TestEmbeddedMigrations(t *testing.T) {
	got, err := loadMigrations(migrationsFS)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "0001_users", got[0].version)
	require.Equal(t, "0002_embedding_cache", got[1].version)
}
