package burndb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/xenartist/memo.rip/pkg/burnstore"
	mghelper "github.com/xenartist/memo.rip/pkg/pgutil/migrations"
)

const (
	idxBurnsUnreconciled = "idx_burns_unreconciled"
	idxBurnsAmount       = "idx_burns_amount"
	idxBurnsBlockTime    = "idx_burns_block_time"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating burns table...")
		if err := mghelper.CreateSchema(ctx, db, &burnstore.BurnDao{}); err != nil {
			return err
		}
		if err := mghelper.CreateModelIndexes(ctx, db, &burnstore.BurnDao{}, "burner"); err != nil {
			return err
		}
		// sweep order
		if err := mghelper.CreatePartialIndex(ctx, db, &burnstore.BurnDao{}, idxBurnsUnreconciled,
			"reconciled = FALSE", "last_checked_at NULLS FIRST", "created_at"); err != nil {
			return err
		}
		// leaderboards
		if err := mghelper.CreatePartialIndex(ctx, db, &burnstore.BurnDao{}, idxBurnsAmount,
			"reconciled = TRUE AND amount > 0", "amount DESC"); err != nil {
			return err
		}
		return mghelper.CreatePartialIndex(ctx, db, &burnstore.BurnDao{}, idxBurnsBlockTime,
			"reconciled = TRUE AND amount > 0", "block_time DESC")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping burns table...")
		if err := mghelper.DropIndexes(ctx, db, idxBurnsUnreconciled, idxBurnsAmount, idxBurnsBlockTime); err != nil {
			return err
		}
		return mghelper.DropTables(ctx, db, &burnstore.BurnDao{})
	})
}
