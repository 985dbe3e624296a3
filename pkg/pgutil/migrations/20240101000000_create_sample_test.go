package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// registerSample registers from this file so bun derives the migration name from it.
func registerSample(ms *migrate.Migrations) {
	ms.MustRegister(func(ctx context.Context, db *bun.DB) error {
		return CreateSchema(ctx, db, &sampleDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		return DropTables(ctx, db, &sampleDao{})
	})
}
