// Package gateway is the write side of the RPC proxy. It forwards JSON-RPC
// calls upstream and, for signature status polls, tracks the signature until
// it is confirmed and hands it to the reconciler.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xenartist/memo.rip/internal/metrics"
	"github.com/xenartist/memo.rip/pkg/rpc"
	"github.com/xenartist/memo.rip/pkg/solana"
)

// ErrConfirmationTimeout is returned when a polled signature does not reach
// confirmed or finalized within the poll budget.
var ErrConfirmationTimeout = errors.New("transaction confirmation timeout")

// Upstream forwards raw JSON-RPC bodies.
type Upstream interface {
	Forward(ctx context.Context, body []byte) (*solana.RawResponse, error)
}

// Store is the subset of the burn store the gateway writes to.
type Store interface {
	InsertProvisional(ctx context.Context, signature string) (bool, error)
	DeleteUnconfirmed(ctx context.Context, signature string) (bool, error)
}

// Scheduler accepts confirmed signatures for background reconciliation.
type Scheduler interface {
	Schedule(signature string, delay time.Duration) bool
}

// Config holds the confirmation poll settings. PollBudget, when set, bounds
// the whole poll loop and must end before the request deadline.
type Config struct {
	ConfirmationMethod string
	MaxPollAttempts    int
	PollInterval       time.Duration
	PollBudget         time.Duration
	SettleDelay        time.Duration
}

// Gateway intercepts signature status polls and forwards everything else untouched.
type Gateway struct {
	upstream  Upstream
	store     Store
	scheduler Scheduler
	cfg       Config
	logger    *zap.Logger
}

// New creates a Gateway.
func New(upstream Upstream, store Store, scheduler Scheduler, cfg Config, logger *zap.Logger) *Gateway {
	if cfg.ConfirmationMethod == "" {
		cfg.ConfirmationMethod = solana.MethodGetSignatureStatuses
	}
	if cfg.MaxPollAttempts <= 0 {
		cfg.MaxPollAttempts = 1
	}
	return &Gateway{
		upstream:  upstream,
		store:     store,
		scheduler: scheduler,
		cfg:       cfg,
		logger:    logger,
	}
}

// HandleProxiedCall forwards body upstream and returns the upstream reply.
// Batches, undecodable or invalid requests and other methods are forwarded as is.
func (g *Gateway) HandleProxiedCall(ctx context.Context, body []byte) (*solana.RawResponse, error) {
	if rpc.IsBatch(body) {
		return g.upstream.Forward(ctx, body)
	}

	var req rpc.Request
	if err := json.Unmarshal(body, &req); err != nil || req.Validate() != nil || req.Method != g.cfg.ConfirmationMethod {
		return g.upstream.Forward(ctx, body)
	}

	signature, ok := TargetSignature(&req)
	if !ok {
		return g.upstream.Forward(ctx, body)
	}
	return g.awaitConfirmation(ctx, signature, body)
}

func (g *Gateway) awaitConfirmation(ctx context.Context, signature string, body []byte) (*solana.RawResponse, error) {
	logger := g.logger.With(zap.String("signature", signature))

	inserted, err := g.store.InsertProvisional(ctx, signature)
	if err != nil {
		return nil, fmt.Errorf("track signature: %w", err)
	}
	if inserted {
		logger.Debug("provisional burn recorded")
	}

	pollCtx := ctx
	if g.cfg.PollBudget > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, g.cfg.PollBudget)
		defer cancel()
	}

	for attempt := 1; attempt <= g.cfg.MaxPollAttempts; attempt++ {
		if attempt > 1 {
			if err := wait(pollCtx, g.cfg.PollInterval); err != nil {
				if budgetSpent(ctx, pollCtx) {
					return g.timeout(ctx, logger, signature, attempt-1)
				}
				return nil, err
			}
		}

		resp, err := g.upstream.Forward(pollCtx, body)
		if err != nil {
			if budgetSpent(ctx, pollCtx) {
				return g.timeout(ctx, logger, signature, attempt)
			}
			metrics.ConfirmationsTotal.WithLabelValues("transport_error").Inc()
			return nil, err
		}

		status, err := decodeStatus(resp)
		if err != nil {
			metrics.ConfirmationsTotal.WithLabelValues("upstream_error").Inc()
			logger.Warn("status poll returned no usable status, passing through", zap.Error(err))
			return resp, nil
		}

		switch {
		case status.Failed():
			metrics.ConfirmationsTotal.WithLabelValues("failed").Inc()
			g.forget(ctx, logger, signature)
			logger.Info("transaction failed on chain, provisional burn removed")
			return resp, nil
		case status.Confirmed():
			metrics.ConfirmationsTotal.WithLabelValues("confirmed").Inc()
			if !g.scheduler.Schedule(signature, g.cfg.SettleDelay) {
				logger.Debug("reconciliation not scheduled, already in flight or shutting down")
			}
			logger.Info("transaction confirmed",
				zap.String("status", status.ConfirmationStatus),
				zap.Int("attempt", attempt))
			return resp, nil
		}
	}

	return g.timeout(ctx, logger, signature, g.cfg.MaxPollAttempts)
}

func (g *Gateway) timeout(ctx context.Context, logger *zap.Logger, signature string, polls int) (*solana.RawResponse, error) {
	metrics.ConfirmationsTotal.WithLabelValues("timeout").Inc()
	g.forget(ctx, logger, signature)
	logger.Warn("confirmation poll budget exhausted", zap.Int("polls", polls))
	return nil, ErrConfirmationTimeout
}

// budgetSpent reports whether pollCtx ended on its own deadline while the
// caller's context is still live.
func budgetSpent(ctx, pollCtx context.Context) bool {
	return ctx.Err() == nil && errors.Is(pollCtx.Err(), context.DeadlineExceeded)
}

// forget drops the provisional row. Reconciled rows are left alone by the store.
func (g *Gateway) forget(ctx context.Context, logger *zap.Logger, signature string) {
	if _, err := g.store.DeleteUnconfirmed(context.WithoutCancel(ctx), signature); err != nil {
		logger.Error("failed to delete provisional burn", zap.Error(err))
	}
}

// TargetSignature returns the first signature of a getSignatureStatuses call
// when it is well formed.
func TargetSignature(req *rpc.Request) (string, bool) {
	params := req.PositionalParams()
	if len(params) == 0 {
		return "", false
	}
	var signatures []string
	if err := json.Unmarshal(params[0], &signatures); err != nil || len(signatures) == 0 {
		return "", false
	}
	sig := signatures[0]
	if !solana.ValidSignature(sig) {
		return "", false
	}
	return sig, true
}

func decodeStatus(resp *solana.RawResponse) (*solana.SignatureStatus, error) {
	var out rpc.Response
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, err
	}
	if out.Error != nil {
		return nil, out.Error
	}
	if rpc.IsNull(out.Result) {
		return nil, errors.New("empty result")
	}
	var result solana.SignatureStatusesResult
	if err := json.Unmarshal(out.Result, &result); err != nil {
		return nil, err
	}
	// An unknown signature decodes to a nil status, which is neither failed nor confirmed.
	return result.First(), nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
