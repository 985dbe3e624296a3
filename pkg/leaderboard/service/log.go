package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/xenartist/memo.rip/pkg/app/errors"
	"github.com/xenartist/memo.rip/pkg/leaderboard"
)

const serviceName = "LeaderboardService"

// logService wraps Service with logging of every call
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the leaderboard Service.
// Calls are logged at debug level; internal failures at error level.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) done(method string, start time.Time, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("service", serviceName),
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
	)
	switch {
	case err == nil:
		ls.logger.Debug(method+" completed", fields...)
	case apperrors.IsInternalError(err):
		ls.logger.Error(method+" failed", append(fields, zap.Error(err))...)
	default:
		ls.logger.Debug(method+" rejected", append(fields, zap.Error(err))...)
	}
}

func (ls *logService) BurnStats(ctx context.Context) (resp *leaderboard.BurnStats, err error) {
	defer func(start time.Time) {
		var fields []zap.Field
		if resp != nil {
			fields = append(fields, zap.Int64("total_burn", resp.TotalBurn))
		}
		ls.done("BurnStats", start, err, fields...)
	}(time.Now())
	return ls.svc.BurnStats(ctx)
}

func (ls *logService) TopBurns(ctx context.Context) (resp []leaderboard.BurnItem, err error) {
	defer func(start time.Time) {
		ls.done("TopBurns", start, err, zap.Int("count", len(resp)))
	}(time.Now())
	return ls.svc.TopBurns(ctx)
}

func (ls *logService) LatestBurns(ctx context.Context) (resp []leaderboard.BurnItem, err error) {
	defer func(start time.Time) {
		ls.done("LatestBurns", start, err, zap.Int("count", len(resp)))
	}(time.Now())
	return ls.svc.LatestBurns(ctx)
}

func (ls *logService) TopTotalBurns(ctx context.Context) (resp []leaderboard.AddressItem, err error) {
	defer func(start time.Time) {
		ls.done("TopTotalBurns", start, err, zap.Int("count", len(resp)))
	}(time.Now())
	return ls.svc.TopTotalBurns(ctx)
}

func (ls *logService) GetBurn(ctx context.Context, signature string) (resp *leaderboard.BurnDetail, err error) {
	defer func(start time.Time) {
		ls.done("GetBurn", start, err, zap.String("signature", truncateString(signature, signatureDisplaySize)))
	}(time.Now())
	return ls.svc.GetBurn(ctx, signature)
}

const signatureDisplaySize = 16

// truncateString limits string length for logging
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
