package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/skillmatch/internal/db"
	"github.com/xxxsen/skillmatch/internal/testutil"
)

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.ApplyMigrations(ctx, conn))
	require.NoError(t, db.ApplyMigrations(ctx, conn))

	var count int
	require.NoError(t, conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM schema_migrations WHERE version IN ('0001_users', '0002_embedding_cache')").Scan(&count))
	require.Equal(t, 2, count)
}
