package burnstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenartist/memo.rip/pkg/burn"
)

var baseTime = time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC)

func detail(sig, burner string, amount uint64, offset time.Duration) *burn.Detail {
	return &burn.Detail{
		Signature: sig,
		Burner:    burner,
		Amount:    amount,
		Token:     "Mint1",
		Memo:      "memo-" + sig,
		Timestamp: baseTime.Add(offset),
	}
}

func reconcile(t *testing.T, s Store, d *burn.Detail) {
	t.Helper()
	ctx := context.Background()
	_, err := s.InsertProvisional(ctx, d.Signature)
	require.NoError(t, err)
	require.NoError(t, s.UpsertReconciled(ctx, d))
}

func signatures(recs []burn.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Signature
	}
	return out
}

// runStoreSuite checks the behaviour every Store implementation must share.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("InsertProvisionalIsIdempotent", func(t *testing.T) {
		s, ctx := newStore(t), context.Background()

		created, err := s.InsertProvisional(ctx, "sig1")
		require.NoError(t, err)
		assert.True(t, created)

		created, err = s.InsertProvisional(ctx, "sig1")
		require.NoError(t, err)
		assert.False(t, created)

		rec, err := s.GetBurn(ctx, "sig1")
		require.NoError(t, err)
		assert.Equal(t, burn.StateProvisional, rec.State())
		assert.False(t, rec.CreatedAt.IsZero())
	})

	t.Run("InsertProvisionalKeepsReconciledRow", func(t *testing.T) {
		s, ctx := newStore(t), context.Background()
		reconcile(t, s, detail("sig1", "A", 10, 0))

		created, err := s.InsertProvisional(ctx, "sig1")
		require.NoError(t, err)
		assert.False(t, created)

		rec, err := s.GetBurn(ctx, "sig1")
		require.NoError(t, err)
		assert.True(t, rec.Reconciled)
		assert.Equal(t, uint64(10), rec.Amount)
	})

	t.Run("UpsertReconciledIsIdempotent", func(t *testing.T) {
		s, ctx := newStore(t), context.Background()
		d := detail("sig1", "A", 5_000_000, 0)
		reconcile(t, s, d)
		first, err := s.GetBurn(ctx, "sig1")
		require.NoError(t, err)

		require.NoError(t, s.UpsertReconciled(ctx, d))
		second, err := s.GetBurn(ctx, "sig1")
		require.NoError(t, err)

		assert.Equal(t, first.Amount, second.Amount)
		assert.Equal(t, first.Burner, second.Burner)
		assert.Equal(t, first.Memo, second.Memo)
		assert.True(t, first.Timestamp.Equal(second.Timestamp))
		assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

		total, err := s.TotalBurned(ctx)
		require.NoError(t, err)
		assert.Equal(t, "5000000", total.String())
	})

	t.Run("UpsertReconciledLastWriteWins", func(t *testing.T) {
		s, ctx := newStore(t), context.Background()
		reconcile(t, s, detail("sig1", "A", 10, 0))

		updated := detail("sig1", "B", 20, time.Minute)
		updated.Memo = ""
		require.NoError(t, s.UpsertReconciled(ctx, updated))

		rec, err := s.GetBurn(ctx, "sig1")
		require.NoError(t, err)
		assert.Equal(t, "B", rec.Burner)
		assert.Equal(t, uint64(20), rec.Amount)
		assert.Empty(t, rec.Memo)
		assert.True(t, rec.Timestamp.Equal(baseTime.Add(time.Minute)))

		top, err := s.TopByAmount(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, top, 1)
	})

	t.Run("DeleteUnconfirmedNeverDeletesReconciled", func(t *testing.T) {
		s, ctx := newStore(t), context.Background()
		_, err := s.InsertProvisional(ctx, "pending")
		require.NoError(t, err)
		reconcile(t, s, detail("done", "A", 10, 0))

		deleted, err := s.DeleteUnconfirmed(ctx, "pending")
		require.NoError(t, err)
		assert.True(t, deleted)
		_, err = s.GetBurn(ctx, "pending")
		assert.ErrorIs(t, err, ErrNotFound)

		deleted, err = s.DeleteUnconfirmed(ctx, "done")
		require.NoError(t, err)
		assert.False(t, deleted)
		_, err = s.GetBurn(ctx, "done")
		assert.NoError(t, err)

		deleted, err = s.DeleteUnconfirmed(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("ListUnreconciledOrder", func(t *testing.T) {
		s, ctx := newStore(t), context.Background()
		for i := 1; i <= 4; i++ {
			_, err := s.InsertProvisional(ctx, fmt.Sprintf("p%d", i))
			require.NoError(t, err)
		}
		reconcile(t, s, detail("done", "A", 10, 0))

		pending, err := s.ListUnreconciled(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, signatures(pending))

		limited, err := s.ListUnreconciled(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2"}, signatures(limited))

		// a checked row rotates behind the unchecked ones
		require.NoError(t, s.RecordAttempt(ctx, "p1", errors.New("not found upstream")))
		pending, err = s.ListUnreconciled(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"p2", "p3", "p4", "p1"}, signatures(pending))
		assert.Equal(t, 1, pending[3].CheckAttempts)
		assert.Equal(t, "not found upstream", pending[3].LastError)
		assert.NotNil(t, pending[3].LastCheckedAt)
	})

	t.Run("AggregateExcludesUnreconciledAndZero", func(t *testing.T) {
		s, ctx := newStore(t), context.Background()
		_, err := s.InsertProvisional(ctx, "pending")
		require.NoError(t, err)
		reconcile(t, s, detail("zero", "Z", 0, 3*time.Hour))
		reconcile(t, s, detail("small", "A", 100, time.Hour))
		reconcile(t, s, detail("big", "B", 900, 0))

		snap, err := s.Aggregate(ctx, burn.DefaultLimits())
		require.NoError(t, err)

		assert.Equal(t, []string{"big", "small"}, signatures(snap.TopByAmount))
		assert.Equal(t, []string{"small", "big"}, signatures(snap.Latest))
		require.Len(t, snap.TopByAddressTotal, 1)
		assert.Equal(t, "B", snap.TopByAddressTotal[0].Address)
		assert.Equal(t, "1000", snap.TotalBurned.String())

		for _, rec := range append(snap.TopByAmount, snap.Latest...) {
			assert.NotEqual(t, "pending", rec.Signature)
			assert.NotEqual(t, "zero", rec.Signature)
		}
	})

	t.Run("AddressTotalThreshold", func(t *testing.T) {
		s, ctx := newStore(t), context.Background()
		// 419 in two burns, never listed
		reconcile(t, s, detail("a1", "Below", 400, 0))
		reconcile(t, s, detail("a2", "Below", 19, time.Second))
		// exactly 420, listed
		reconcile(t, s, detail("b1", "Exact", 420, 2*time.Second))
		reconcile(t, s, detail("c1", "Above", 300, 3*time.Second))
		reconcile(t, s, detail("c2", "Above", 300, 4*time.Second))

		totals, err := s.TopByAddressTotal(ctx, 69, decimal.NewFromInt(420))
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, "Above", totals[0].Address)
		assert.Equal(t, "600", totals[0].TotalAmount.String())
		assert.Equal(t, int64(2), totals[0].BurnCount)
		assert.Equal(t, "Exact", totals[1].Address)
		assert.Equal(t, "420", totals[1].TotalAmount.String())
		assert.Equal(t, int64(1), totals[1].BurnCount)
	})

	t.Run("AggregateLimits", func(t *testing.T) {
		s, ctx := newStore(t), context.Background()
		for i := 1; i <= 12; i++ {
			reconcile(t, s, detail(fmt.Sprintf("s%02d", i), fmt.Sprintf("addr%02d", i), uint64(i*1000), time.Duration(i)*time.Second))
		}

		limits := burn.Limits{TopN: 10, AddressTopN: 3, MinAddressTotal: decimal.NewFromInt(420)}
		snap, err := s.Aggregate(ctx, limits)
		require.NoError(t, err)
		assert.Len(t, snap.TopByAmount, 10)
		assert.Equal(t, "s12", snap.TopByAmount[0].Signature)
		assert.Len(t, snap.Latest, 10)
		assert.Equal(t, "s12", snap.Latest[0].Signature)
		assert.Len(t, snap.TopByAddressTotal, 3)
		assert.Equal(t, "78000", snap.TotalBurned.String())
	})

	t.Run("AggregateSelectedKinds", func(t *testing.T) {
		s, ctx := newStore(t), context.Background()
		reconcile(t, s, detail("s1", "A", 500, 0))

		snap, err := s.Aggregate(ctx, burn.DefaultLimits(), burn.KindTotalBurned)
		require.NoError(t, err)
		assert.Empty(t, snap.TopByAmount)
		assert.Empty(t, snap.Latest)
		assert.Empty(t, snap.TopByAddressTotal)
		assert.Equal(t, "500", snap.TotalBurned.String())
	})

	t.Run("EmptyStore", func(t *testing.T) {
		s, ctx := newStore(t), context.Background()
		snap, err := s.Aggregate(ctx, burn.DefaultLimits())
		require.NoError(t, err)
		assert.Empty(t, snap.TopByAmount)
		assert.True(t, snap.TotalBurned.IsZero())

		_, err = s.GetBurn(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
