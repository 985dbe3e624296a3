// Package reconciler turns known signatures into reconciled burn records,
// either on demand (gateway) or in periodic sweeps over provisional rows.
package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xenartist/memo.rip/internal/metrics"
	"github.com/xenartist/memo.rip/pkg/burn"
	"github.com/xenartist/memo.rip/pkg/solana"
)

// Trigger identifies what started a reconciliation.
type Trigger string

const (
	TriggerGateway Trigger = "gateway"
	TriggerSweep   Trigger = "sweep"
	TriggerDirect  Trigger = "direct"
)

var (
	// ErrAttemptsExhausted is returned when every attempt failed with a retryable error.
	ErrAttemptsExhausted = errors.New("reconciliation attempts exhausted")
	// ErrInFlight is returned when the signature is already being reconciled.
	ErrInFlight = errors.New("reconciliation already in flight")
	// ErrUnexpectedMint is returned for a burn of a mint other than the tracked one.
	ErrUnexpectedMint = errors.New("burn of an untracked mint")
	// ErrShuttingDown is returned when a retry wait is cut short by Shutdown.
	ErrShuttingDown = errors.New("worker shutting down")

	errNotAvailable = errors.New("transaction not available yet")
)

// Fetcher retrieves finalized transaction detail.
//
//go:generate mockery --name Fetcher --output mocks --outpkg mocks --filename mock_fetcher.go --with-expecter
type Fetcher interface {
	GetTransaction(ctx context.Context, signature string) (json.RawMessage, error)
}

// Store is the subset of the burn store the worker writes to.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	UpsertReconciled(ctx context.Context, detail *burn.Detail) error
	RecordAttempt(ctx context.Context, signature string, attemptErr error) error
	ListUnreconciled(ctx context.Context, limit int) ([]burn.Record, error)
}

// Invalidator is notified after every successful write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// WorkerConfig holds the retry budget of a reconciliation.
type WorkerConfig struct {
	MaxAttempts    int
	RetryDelay     time.Duration
	AttemptTimeout time.Duration
	// Mint, when set, rejects burns of any other token.
	Mint string
}

// Worker fetches, parses and stores burn detail for one signature at a time
// per signature. Scheduled tasks run detached from the caller and are drained
// by Shutdown.
type Worker struct {
	fetcher Fetcher
	store   Store
	cache   Invalidator
	cfg     WorkerConfig
	logger  *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
	closed   bool

	draining chan struct{}
	baseCtx  context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorker creates a Worker.
func NewWorker(fetcher Fetcher, store Store, cache Invalidator, cfg WorkerConfig, logger *zap.Logger) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		fetcher:  fetcher,
		store:    store,
		cache:    cache,
		cfg:      cfg,
		logger:   logger,
		inFlight: make(map[string]struct{}),
		draining: make(chan struct{}),
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

func (w *Worker) acquire(signature string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.inFlight[signature]; busy {
		return false
	}
	w.inFlight[signature] = struct{}{}
	metrics.InFlightReconciliations.Set(float64(len(w.inFlight)))
	return true
}

func (w *Worker) release(signature string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, signature)
	metrics.InFlightReconciliations.Set(float64(len(w.inFlight)))
}

// InFlight reports whether signature is currently owned by the worker.
func (w *Worker) InFlight(signature string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, busy := w.inFlight[signature]
	return busy
}

// Reconcile runs a reconciliation with the configured attempt budget and
// returns its terminal error.
func (w *Worker) Reconcile(ctx context.Context, signature string) error {
	return w.ReconcileAttempts(ctx, signature, w.cfg.MaxAttempts, TriggerDirect)
}

// ReconcileAttempts runs a reconciliation with an explicit attempt budget.
// It returns ErrInFlight without doing any work when the signature is busy.
func (w *Worker) ReconcileAttempts(ctx context.Context, signature string, attempts int, trigger Trigger) error {
	if !w.acquire(signature) {
		return ErrInFlight
	}
	defer w.release(signature)
	return w.run(ctx, signature, attempts, trigger)
}

// Schedule reconciles signature in the background after delay. It returns
// false when the signature is already in flight or the worker is shutting down.
func (w *Worker) Schedule(signature string, delay time.Duration) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false
	}
	if _, busy := w.inFlight[signature]; busy {
		w.mu.Unlock()
		return false
	}
	w.inFlight[signature] = struct{}{}
	metrics.InFlightReconciliations.Set(float64(len(w.inFlight)))
	w.wg.Add(1)
	w.mu.Unlock()

	go w.supervise(signature, func() {
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-w.draining:
				w.logger.Info("scheduled reconciliation dropped by shutdown, left for sweep",
					zap.String("signature", signature))
				return
			}
		}
		_ = w.run(w.baseCtx, signature, w.cfg.MaxAttempts, TriggerGateway)
	})
	return true
}

// supervise runs task in its own failure domain.
func (w *Worker) supervise(signature string, task func()) {
	defer w.wg.Done()
	defer w.release(signature)
	defer func() {
		if r := recover(); r != nil {
			metrics.ErrorsTotal.WithLabelValues("reconciler", "panic").Inc()
			w.logger.Error("reconciliation task panicked",
				zap.String("signature", signature),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	task()
}

// Shutdown stops accepting work, drops pending settle delays and waits for
// running reconciliations. When ctx expires first, running work is cancelled.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.draining)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.cancel()
		return nil
	case <-ctx.Done():
		w.cancel()
		<-done
		return fmt.Errorf("reconciliation drain interrupted: %w", ctx.Err())
	}
}

func (w *Worker) run(ctx context.Context, signature string, attempts int, trigger Trigger) error {
	start := time.Now()
	logger := w.logger.With(zap.String("signature", signature), zap.String("trigger", string(trigger)))
	defer func() {
		metrics.ReconciliationDuration.WithLabelValues(string(trigger)).Observe(time.Since(start).Seconds())
	}()

	var (
		detail  *burn.Detail
		lastErr error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := w.backoff(ctx); err != nil {
				lastErr = err
				break
			}
		}

		detail, lastErr = w.fetch(ctx, signature)
		if lastErr == nil {
			break
		}
		if terminal(lastErr) {
			w.abandon(ctx, logger, signature, trigger, "rejected", lastErr)
			return lastErr
		}
		logger.Warn("reconciliation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(lastErr))
	}

	if lastErr != nil {
		err := fmt.Errorf("%w: %w", ErrAttemptsExhausted, lastErr)
		w.abandon(ctx, logger, signature, trigger, "abandoned", err)
		return err
	}

	if err := w.store.UpsertReconciled(ctx, detail); err != nil {
		metrics.ReconciliationsTotal.WithLabelValues(string(trigger), "store_error").Inc()
		logger.Error("failed to store reconciled burn", zap.Error(err))
		return err
	}

	if err := w.cache.Invalidate(ctx); err != nil {
		logger.Warn("cache invalidation after reconciliation failed", zap.Error(err))
	}

	metrics.ReconciliationsTotal.WithLabelValues(string(trigger), "reconciled").Inc()
	logger.Info("burn reconciled",
		zap.String("burner", detail.Burner),
		zap.Uint64("amount", detail.Amount),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func (w *Worker) backoff(ctx context.Context) error {
	timer := time.NewTimer(w.cfg.RetryDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-w.draining:
		return ErrShuttingDown
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) fetch(ctx context.Context, signature string) (*burn.Detail, error) {
	if w.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.AttemptTimeout)
		defer cancel()
	}

	raw, err := w.fetcher.GetTransaction(ctx, signature)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errNotAvailable
	}

	detail, err := solana.ParseBurn(raw)
	if err != nil {
		return nil, err
	}
	if detail.Signature != signature {
		return nil, fmt.Errorf("%w: transaction signature %s does not match %s",
			solana.ErrMalformedTransaction, detail.Signature, signature)
	}
	if w.cfg.Mint != "" && detail.Token != w.cfg.Mint {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedMint, detail.Token)
	}
	return detail, nil
}

func terminal(err error) bool {
	return solana.IsParseError(err) || errors.Is(err, ErrUnexpectedMint)
}

// abandon leaves the row provisional and records why.
func (w *Worker) abandon(ctx context.Context, logger *zap.Logger, signature string, trigger Trigger, outcome string, cause error) {
	metrics.ReconciliationsTotal.WithLabelValues(string(trigger), outcome).Inc()
	logger.Warn("reconciliation abandoned", zap.String("outcome", outcome), zap.Error(cause))

	if err := w.store.RecordAttempt(context.WithoutCancel(ctx), signature, cause); err != nil {
		logger.Error("failed to record reconciliation attempt", zap.Error(err))
	}
}
