package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/xenartist/memo.rip/pkg/app/errors"
	"github.com/xenartist/memo.rip/pkg/burn"
	"github.com/xenartist/memo.rip/pkg/burnstore"
	"github.com/xenartist/memo.rip/pkg/leaderboard"
	"github.com/xenartist/memo.rip/pkg/solana"
)

// Reader serves the aggregate views, normally the read cache.
//
//go:generate mockery --name Reader --output mocks --outpkg mocks --filename mock_reader.go --with-expecter
type Reader interface {
	TopByAmount(ctx context.Context) ([]burn.Record, error)
	Latest(ctx context.Context) ([]burn.Record, error)
	TopByAddressTotal(ctx context.Context) ([]burn.AddressTotal, error)
	TotalBurned(ctx context.Context) (decimal.Decimal, error)
}

// Lookup reads a single row from the store.
type Lookup interface {
	GetBurn(ctx context.Context, signature string) (*burn.Record, error)
}

// Service defines the read API over burn records.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	BurnStats(ctx context.Context) (*leaderboard.BurnStats, error)
	TopBurns(ctx context.Context) ([]leaderboard.BurnItem, error)
	LatestBurns(ctx context.Context) ([]leaderboard.BurnItem, error)
	TopTotalBurns(ctx context.Context) ([]leaderboard.AddressItem, error)
	GetBurn(ctx context.Context, signature string) (*leaderboard.BurnDetail, error)
}

// Config describes the tracked token.
type Config struct {
	Decimals    int32
	TotalSupply uint64
}

type leaderboardService struct {
	reader Reader
	lookup Lookup
	cfg    Config
	logger *zap.Logger
}

// NewService creates the read Service.
func NewService(reader Reader, lookup Lookup, cfg Config, logger *zap.Logger) Service {
	return &leaderboardService{
		reader: reader,
		lookup: lookup,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *leaderboardService) BurnStats(ctx context.Context) (*leaderboard.BurnStats, error) {
	total, err := s.reader.TotalBurned(ctx)
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("total burned: %w", err))
	}
	return leaderboard.NewBurnStats(total, s.cfg.Decimals, s.cfg.TotalSupply), nil
}

func (s *leaderboardService) TopBurns(ctx context.Context) ([]leaderboard.BurnItem, error) {
	records, err := s.reader.TopByAmount(ctx)
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("top burns: %w", err))
	}
	return leaderboard.NewBurnItems(records), nil
}

func (s *leaderboardService) LatestBurns(ctx context.Context) ([]leaderboard.BurnItem, error) {
	records, err := s.reader.Latest(ctx)
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("latest burns: %w", err))
	}
	return leaderboard.NewBurnItems(records), nil
}

func (s *leaderboardService) TopTotalBurns(ctx context.Context) ([]leaderboard.AddressItem, error) {
	totals, err := s.reader.TopByAddressTotal(ctx)
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("top total burns: %w", err))
	}
	return leaderboard.NewAddressItems(totals), nil
}

func (s *leaderboardService) GetBurn(ctx context.Context, signature string) (*leaderboard.BurnDetail, error) {
	if !solana.ValidSignature(signature) {
		return nil, apperrors.BadRequestError(nil, "invalid signature")
	}
	rec, err := s.lookup.GetBurn(ctx, signature)
	if errors.Is(err, burnstore.ErrNotFound) {
		return nil, apperrors.ResourceNotFoundError(err, "burn not found")
	}
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("get burn: %w", err))
	}
	return leaderboard.NewBurnDetail(rec), nil
}
