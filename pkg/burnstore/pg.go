package burnstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/xenartist/memo.rip/pkg/burn"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the burn store
func NewStore(db *bun.DB) Store {
	return &pgStore{db: db}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrStore, op, err)
}

func (s *pgStore) InsertProvisional(ctx context.Context, signature string) (bool, error) {
	res, err := s.db.NewInsert().
		Model(&BurnDao{Signature: signature}).
		On("CONFLICT (signature) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return false, storeErr("insert provisional burn", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("insert provisional burn", err)
	}
	return n > 0, nil
}

func (s *pgStore) UpsertReconciled(ctx context.Context, detail *burn.Detail) error {
	_, err := s.db.NewInsert().
		Model(toReconciledDao(detail)).
		On("CONFLICT (signature) DO UPDATE").
		Set("burner = EXCLUDED.burner").
		Set("amount = EXCLUDED.amount").
		Set("token = EXCLUDED.token").
		Set("memo = EXCLUDED.memo").
		Set("block_time = EXCLUDED.block_time").
		Set("reconciled = TRUE").
		Set("last_error = NULL").
		Set("updated_at = NOW()").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return storeErr("upsert reconciled burn", err)
	}
	return nil
}

func (s *pgStore) DeleteUnconfirmed(ctx context.Context, signature string) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*BurnDao)(nil)).
		Where("signature = ?", signature).
		Where("reconciled = FALSE").
		Exec(ctx)
	if err != nil {
		return false, storeErr("delete unconfirmed burn", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("delete unconfirmed burn", err)
	}
	return n > 0, nil
}

func (s *pgStore) ListUnreconciled(ctx context.Context, limit int) ([]burn.Record, error) {
	var daos []BurnDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("reconciled = FALSE").
		OrderExpr("last_checked_at ASC NULLS FIRST").
		OrderExpr("created_at ASC").
		OrderExpr("signature ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, storeErr("list unreconciled burns", err)
	}
	return toRecords(daos), nil
}

func (s *pgStore) RecordAttempt(ctx context.Context, signature string, attemptErr error) error {
	var lastError *string
	if msg := attemptMessage(attemptErr); msg != "" {
		lastError = &msg
	}
	_, err := s.db.NewUpdate().
		Model((*BurnDao)(nil)).
		Set("check_attempts = check_attempts + 1").
		Set("last_checked_at = NOW()").
		Set("last_error = ?", lastError).
		Set("updated_at = NOW()").
		Where("signature = ?", signature).
		Where("reconciled = FALSE").
		Exec(ctx)
	if err != nil {
		return storeErr("record reconciliation attempt", err)
	}
	return nil
}

func (s *pgStore) GetBurn(ctx context.Context, signature string) (*burn.Record, error) {
	dao := new(BurnDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("signature = ?", signature).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get burn", err)
	}
	rec := toRecord(dao)
	return &rec, nil
}

func (s *pgStore) TopByAmount(ctx context.Context, limit int) ([]burn.Record, error) {
	return topByAmount(ctx, s.db, limit)
}

func (s *pgStore) Latest(ctx context.Context, limit int) ([]burn.Record, error) {
	return latest(ctx, s.db, limit)
}

func (s *pgStore) TopByAddressTotal(ctx context.Context, limit int, minTotal decimal.Decimal) ([]burn.AddressTotal, error) {
	return topByAddressTotal(ctx, s.db, limit, minTotal)
}

func (s *pgStore) TotalBurned(ctx context.Context) (decimal.Decimal, error) {
	return totalBurned(ctx, s.db)
}

func (s *pgStore) Aggregate(ctx context.Context, limits burn.Limits, kinds ...burn.Kind) (*burn.Snapshot, error) {
	want := wantKinds(kinds)
	snap := &burn.Snapshot{TotalBurned: decimal.Zero}

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := s.db.RunInTx(ctx, opts, func(ctx context.Context, tx bun.Tx) error {
		var err error
		if want[burn.KindTopByAmount] {
			if snap.TopByAmount, err = topByAmount(ctx, tx, limits.TopN); err != nil {
				return err
			}
		}
		if want[burn.KindLatest] {
			if snap.Latest, err = latest(ctx, tx, limits.TopN); err != nil {
				return err
			}
		}
		if want[burn.KindTopByAddressTotal] {
			if snap.TopByAddressTotal, err = topByAddressTotal(ctx, tx, limits.AddressTopN, limits.MinAddressTotal); err != nil {
				return err
			}
		}
		if want[burn.KindTotalBurned] {
			if snap.TotalBurned, err = totalBurned(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStore) {
			return nil, err
		}
		return nil, storeErr("aggregate burns", err)
	}
	return snap, nil
}

func visibleBurns(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("reconciled = TRUE").Where("amount > 0")
}

func topByAmount(ctx context.Context, db bun.IDB, limit int) ([]burn.Record, error) {
	var daos []BurnDao
	err := visibleBurns(db.NewSelect().Model(&daos)).
		OrderExpr("amount DESC").
		OrderExpr("block_time DESC").
		OrderExpr("signature ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, storeErr("query top burns", err)
	}
	return toRecords(daos), nil
}

func latest(ctx context.Context, db bun.IDB, limit int) ([]burn.Record, error) {
	var daos []BurnDao
	err := visibleBurns(db.NewSelect().Model(&daos)).
		OrderExpr("block_time DESC").
		OrderExpr("created_at DESC").
		OrderExpr("signature ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, storeErr("query latest burns", err)
	}
	return toRecords(daos), nil
}

func topByAddressTotal(ctx context.Context, db bun.IDB, limit int, minTotal decimal.Decimal) ([]burn.AddressTotal, error) {
	var rows []AddressTotalRow
	err := visibleBurns(db.NewSelect().Model((*BurnDao)(nil))).
		ColumnExpr("burner").
		ColumnExpr("SUM(amount) AS total_amount").
		ColumnExpr("COUNT(*) AS burn_count").
		Group("burner").
		Having("SUM(amount) >= ?", minTotal).
		OrderExpr("total_amount DESC").
		OrderExpr("burner ASC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, storeErr("query top address totals", err)
	}
	return toAddressTotals(rows), nil
}

func totalBurned(ctx context.Context, db bun.IDB) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.NewSelect().
		Model((*BurnDao)(nil)).
		ColumnExpr("COALESCE(SUM(amount), 0)").
		Where("reconciled = TRUE").
		Scan(ctx, &total)
	if err != nil {
		return decimal.Zero, storeErr("query total burned", err)
	}
	return total, nil
}
