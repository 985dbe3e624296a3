package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/xenartist/memo.rip/pkg/app/errors"
	"github.com/xenartist/memo.rip/pkg/burn"
	"github.com/xenartist/memo.rip/pkg/burnstore"
	"github.com/xenartist/memo.rip/pkg/leaderboard/service/mocks"
)

var testConfig = Config{Decimals: 6, TotalSupply: 58294721418}

func TestLeaderboardService_BurnStats(t *testing.T) {
	ctx := context.Background()
	reader := mocks.NewReader(t)
	reader.EXPECT().TotalBurned(ctx).Return(decimal.NewFromInt(12_345_678), nil).Once()

	svc := NewService(reader, burnstore.NewMemoryStore(), testConfig, zap.NewNop())
	stats, err := svc.BurnStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.TotalBurn)
	assert.InDelta(t, 12.0/58294721418*100, stats.BurnPercentage, 1e-15)
}

func TestLeaderboardService_ReaderFailureIsInternal(t *testing.T) {
	ctx := context.Background()
	reader := mocks.NewReader(t)
	cause := errors.New("connection refused")
	reader.EXPECT().TopByAmount(ctx).Return(nil, cause).Once()

	svc := NewService(reader, burnstore.NewMemoryStore(), testConfig, zap.NewNop())
	_, err := svc.TopBurns(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperrors.Is(err, apperrors.CategoryGeneralError))
}

func TestLeaderboardService_ListsKeepOrder(t *testing.T) {
	ctx := context.Background()
	reader := mocks.NewReader(t)
	ts := time.Unix(1700000000, 0)
	reader.EXPECT().Latest(ctx).Return([]burn.Record{
		{Signature: "b", Amount: 1, Timestamp: ts.Add(time.Minute), Reconciled: true},
		{Signature: "a", Amount: 2, Timestamp: ts, Reconciled: true},
	}, nil).Once()
	reader.EXPECT().TopByAddressTotal(ctx).Return([]burn.AddressTotal{
		{Address: "X", TotalAmount: decimal.NewFromInt(900), BurnCount: 3},
		{Address: "Y", TotalAmount: decimal.NewFromInt(420), BurnCount: 1},
	}, nil).Once()

	svc := NewService(reader, burnstore.NewMemoryStore(), testConfig, zap.NewNop())

	latest, err := svc.LatestBurns(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "b", latest[0].Signature)
	assert.Equal(t, ts.Add(time.Minute).Unix(), latest[0].Timestamp)

	totals, err := svc.TopTotalBurns(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, 1, totals[0].Rank)
	assert.Equal(t, "900", totals[0].TotalAmount.String())
	assert.Equal(t, 2, totals[1].Rank)
}

func TestLeaderboardService_GetBurn(t *testing.T) {
	ctx := context.Background()
	store := burnstore.NewMemoryStore()
	_, err := store.InsertProvisional(ctx, "sig1")
	require.NoError(t, err)

	svc := NewService(mocks.NewReader(t), store, testConfig, zap.NewNop())

	detail, err := svc.GetBurn(ctx, "sig1")
	require.NoError(t, err)
	assert.Equal(t, burn.StateProvisional, detail.State)

	_, err = svc.GetBurn(ctx, "sig2")
	assert.True(t, apperrors.Is(err, apperrors.CategoryResourceNotFound))

	_, err = svc.GetBurn(ctx, "0OIl")
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
}
