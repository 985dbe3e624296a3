package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/xenartist/memo.rip/pkg/config"
	"github.com/xenartist/memo.rip/pkg/pgutil"
)

type sampleDao struct {
	bun.BaseModel `bun:"table:sample_table"`
	ID            int64  `bun:",pk,autoincrement"`
	Name          string `bun:",notnull,type:varchar(100)"`
	Done          bool   `bun:",notnull,default:false"`
}

func TestConnectDB_InvalidHost(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "invalid-host-that-does-not-exist",
		Port:     5432,
		User:     "test",
		Password: "test",
		Database: "test",
	}

	db, err := pgutil.ConnectDB(cfg)
	if err == nil {
		_ = db.Close()
		t.Fatal("ConnectDB() should fail with invalid host")
	}
}

func TestSchemaHelpers(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, CreateSchema(ctx, db, &sampleDao{}))
	require.NoError(t, CreateSchema(ctx, db, &sampleDao{}), "second call must be idempotent")
	pgutil.AssertTableExists(t, db, "sample_table")

	require.NoError(t, CreateModelIndexes(ctx, db, &sampleDao{}, "name"))
	pgutil.AssertIndexExists(t, db, "idx_sample_table_name")

	require.NoError(t, CreatePartialIndex(ctx, db, &sampleDao{}, "idx_sample_table_pending", "done = FALSE", "id"))
	pgutil.AssertIndexExists(t, db, "idx_sample_table_pending")

	_, err := db.NewInsert().Model(&sampleDao{Name: "a"}).Exec(ctx)
	require.NoError(t, err)
	pgutil.AssertRowCount(t, db, "sample_table", 1)
	require.NoError(t, TruncateTables(ctx, db, &sampleDao{}))
	pgutil.AssertRowCount(t, db, "sample_table", 0)

	require.NoError(t, DropIndexes(ctx, db, "idx_sample_table_name", "idx_sample_table_pending"))
	pgutil.AssertIndexNotExists(t, db, "idx_sample_table_name")
	pgutil.AssertIndexNotExists(t, db, "idx_sample_table_pending")

	require.NoError(t, DropTables(ctx, db, &sampleDao{}))
	require.NoError(t, DropTables(ctx, db, &sampleDao{}))
	pgutil.AssertTableNotExists(t, db, "sample_table")
}

func TestRunMigrations(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	ms := migrate.NewMigrations()
	registerSample(ms)
	require.Len(t, ms.Sorted(), 1)
	assert.Equal(t, "20240101000000", ms.Sorted()[0].Name)
	migrator := migrate.NewMigrator(db, ms)

	require.NoError(t, RunMigrations(ctx, migrator, "init"))
	require.NoError(t, RunMigrations(ctx, migrator, "up"))
	pgutil.AssertTableExists(t, db, "sample_table")
	require.NoError(t, RunMigrations(ctx, migrator, "status"))

	require.NoError(t, RunMigrations(ctx, migrator, "down"))
	pgutil.AssertTableNotExists(t, db, "sample_table")

	assert.Error(t, RunMigrations(ctx, migrator, "sideways"))
	assert.Error(t, RunMigrations(ctx, migrator))
}
