package reconciler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xenartist/memo.rip/internal/metrics"
)

// SweeperConfig controls the periodic sweep over provisional rows.
type SweeperConfig struct {
	Interval    time.Duration
	BatchSize   int
	ItemDelay   time.Duration
	MaxAttempts int
}

// SweepResult summarises one sweep run.
type SweepResult struct {
	Listed     int
	Reconciled int
	Failed     int
	Skipped    int
}

// Sweeper periodically reconciles provisional rows one at a time. ItemDelay
// is the idle gap between the end of one item and the start of the next.
type Sweeper struct {
	worker *Worker
	store  Store
	cfg    SweeperConfig
	logger *zap.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewSweeper creates a Sweeper sharing the worker's in-flight guard.
func NewSweeper(worker *Worker, store Store, cfg SweeperConfig, logger *zap.Logger) *Sweeper {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Sweeper{
		worker: worker,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Sweep reconciles up to batchSize provisional rows sequentially. A failing
// item is logged and the batch continues. Only a listing failure or context
// cancellation ends the run early.
func (s *Sweeper) Sweep(ctx context.Context, batchSize int) (*SweepResult, error) {
	start := time.Now()
	rows, err := s.store.ListUnreconciled(ctx, batchSize)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues("sweeper", "list").Inc()
		return nil, err
	}

	res := &SweepResult{Listed: len(rows)}
	if len(rows) == 0 {
		return res, nil
	}

	var skipped bool

	for i, row := range rows {
		if i > 0 && !skipped {
			if err := pause(ctx, s.cfg.ItemDelay); err != nil {
				return res, err
			}
		}

		err := s.worker.ReconcileAttempts(ctx, row.Signature, s.cfg.MaxAttempts, TriggerSweep)
		skipped = errors.Is(err, ErrInFlight)
		switch {
		case err == nil:
			res.Reconciled++
			metrics.SweepItemsTotal.WithLabelValues("reconciled").Inc()
		case skipped:
			res.Skipped++
			metrics.SweepItemsTotal.WithLabelValues("skipped").Inc()
			s.logger.Debug("sweep skipped signature already in flight", zap.String("signature", row.Signature))
		default:
			res.Failed++
			metrics.SweepItemsTotal.WithLabelValues("failed").Inc()
			s.logger.Warn("sweep item failed",
				zap.String("signature", row.Signature),
				zap.Int("check_attempts", row.CheckAttempts+1),
				zap.Error(err))
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
		}
	}

	s.logger.Info("Sweep completed",
		zap.Int("listed", res.Listed),
		zap.Int("reconciled", res.Reconciled),
		zap.Int("failed", res.Failed),
		zap.Int("skipped", res.Skipped),
		zap.Duration("duration", time.Since(start)))
	return res, nil
}

// Start runs a sweep immediately and then every Interval until Stop.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	stopCh := s.stopCh

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		go func() {
			<-stopCh
			cancel()
		}()

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		s.runOnce(ctx)
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	s.logger.Info("Started periodic sweep", zap.Duration("interval", s.cfg.Interval))
}

func (s *Sweeper) runOnce(ctx context.Context) {
	if _, err := s.Sweep(ctx, s.cfg.BatchSize); err != nil && ctx.Err() == nil {
		s.logger.Error("Periodic sweep failed", zap.Error(err))
	}
}

// Stop ends the periodic sweep and waits for the current run to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
}

// pause blocks for d from now, or until ctx ends.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	lim := rate.NewLimiter(rate.Every(d), 1)
	lim.Allow()
	return lim.Wait(ctx)
}
