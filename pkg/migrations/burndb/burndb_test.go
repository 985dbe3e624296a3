package burndb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"

	"github.com/xenartist/memo.rip/pkg/pgutil"
	mghelper "github.com/xenartist/memo.rip/pkg/pgutil/migrations"
)

func TestMigrations_UpDown(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, Migrations)

	group, err := mghelper.Up(ctx, migrator)
	require.NoError(t, err)
	require.False(t, group.IsZero(), "expected migrations to run")

	pgutil.AssertTableExists(t, db, "burns")
	pgutil.AssertTableExists(t, db, "bun_migrations")
	pgutil.AssertIndexExists(t, db, "idx_burns_burner")
	pgutil.AssertIndexExists(t, db, idxBurnsUnreconciled)
	pgutil.AssertIndexExists(t, db, idxBurnsAmount)
	pgutil.AssertIndexExists(t, db, idxBurnsBlockTime)

	group, err = mghelper.Up(ctx, migrator)
	require.NoError(t, err)
	require.True(t, group.IsZero(), "second run must be a no-op")

	_, err = migrator.Rollback(ctx)
	require.NoError(t, err)
	pgutil.AssertTableNotExists(t, db, "burns")
	pgutil.AssertIndexNotExists(t, db, idxBurnsUnreconciled)
	pgutil.AssertIndexNotExists(t, db, idxBurnsAmount)
	pgutil.AssertIndexNotExists(t, db, idxBurnsBlockTime)
}
