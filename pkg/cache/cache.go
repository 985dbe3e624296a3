// Package cache serves burn aggregates from a single snapshot that is
// rebuilt wholesale when it expires or is invalidated.
package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/xenartist/memo.rip/internal/metrics"
	"github.com/xenartist/memo.rip/pkg/burn"
)

// Defaults used when the corresponding option is zero.
const (
	DefaultTTL            = 5 * time.Minute
	DefaultRefreshTimeout = 30 * time.Second
)

const refreshKey = "snapshot"

// Source computes aggregates from the store.
type Source interface {
	Aggregate(ctx context.Context, limits burn.Limits, kinds ...burn.Kind) (*burn.Snapshot, error)
}

type entry struct {
	snap *burn.Snapshot
	gen  uint64
}

// Cache is a TTL cache over one aggregate snapshot. Concurrent readers of an
// expired snapshot share a single recomputation.
type Cache struct {
	source         Source
	limits         burn.Limits
	ttl            time.Duration
	refreshTimeout time.Duration
	logger         *zap.Logger
	now            func() time.Time

	current atomic.Pointer[entry]
	gen     atomic.Uint64
	group   singleflight.Group
}

// Option configures Cache.
type Option func(*Cache)

// WithTTL sets the snapshot lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithRefreshTimeout bounds a single recomputation.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Cache) { c.refreshTimeout = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates an empty cache; the first read computes the snapshot.
func New(source Source, limits burn.Limits, logger *zap.Logger, opts ...Option) *Cache {
	c := &Cache{
		source:         source,
		limits:         limits,
		ttl:            DefaultTTL,
		refreshTimeout: DefaultRefreshTimeout,
		logger:         logger,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.refreshTimeout <= 0 {
		c.refreshTimeout = DefaultRefreshTimeout
	}
	return c
}

func (c *Cache) fresh(e *entry) bool {
	return e != nil &&
		e.gen == c.gen.Load() &&
		c.now().Sub(e.snap.RefreshedAt) <= c.ttl
}

// Snapshot returns the current snapshot, recomputing it first when it is
// older than the TTL or has been invalidated.
func (c *Cache) Snapshot(ctx context.Context) (*burn.Snapshot, error) {
	if e := c.current.Load(); c.fresh(e) {
		return e.snap, nil
	}

	ch := c.group.DoChan(refreshKey, func() (any, error) {
		if e := c.current.Load(); c.fresh(e) {
			return e, nil
		}
		return c.refresh(ctx, "ttl")
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entry).snap, nil
	}
}

// Invalidate marks the current snapshot stale and recomputes it immediately.
func (c *Cache) Invalidate(ctx context.Context) error {
	target := c.gen.Add(1)

	// A refresh already in flight may predate the invalidation. Wait for it,
	// then run one that observes the new generation.
	for i := 0; i < 2; i++ {
		res, err, _ := c.group.Do(refreshKey, func() (any, error) {
			if e := c.current.Load(); e != nil && e.gen >= target && c.fresh(e) {
				return e, nil
			}
			return c.refresh(ctx, "invalidate")
		})
		if err != nil {
			return err
		}
		if res.(*entry).gen >= target {
			return nil
		}
	}
	return nil
}

func (c *Cache) refresh(ctx context.Context, trigger string) (*entry, error) {
	gen := c.gen.Load()
	start := time.Now()

	// shared by every waiter, so a single caller cancelling must not abort it
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
	defer cancel()

	snap, err := c.source.Aggregate(ctx, c.limits)
	metrics.CacheRefreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CacheRefreshesTotal.WithLabelValues(trigger, "error").Inc()
		c.logger.Error("burn snapshot refresh failed", zap.String("trigger", trigger), zap.Error(err))
		return nil, fmt.Errorf("refresh burn snapshot: %w", err)
	}
	snap.RefreshedAt = c.now()

	e := &entry{snap: snap, gen: gen}
	for {
		old := c.current.Load()
		if old != nil && old.gen > gen {
			break
		}
		if c.current.CompareAndSwap(old, e) {
			break
		}
	}

	metrics.CacheRefreshesTotal.WithLabelValues(trigger, "ok").Inc()
	c.logger.Debug("burn snapshot refreshed",
		zap.String("trigger", trigger),
		zap.Uint64("generation", gen),
		zap.Duration("duration", time.Since(start)))
	return e, nil
}

// TopByAmount returns the largest reconciled burns.
func (c *Cache) TopByAmount(ctx context.Context) ([]burn.Record, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.TopByAmount, nil
}

// Latest returns the most recent reconciled burns.
func (c *Cache) Latest(ctx context.Context) ([]burn.Record, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Latest, nil
}

// TopByAddressTotal returns the per-address leaderboard.
func (c *Cache) TopByAddressTotal(ctx context.Context) ([]burn.AddressTotal, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.TopByAddressTotal, nil
}

// TotalBurned returns the sum of all reconciled burns in base units.
func (c *Cache) TotalBurned(ctx context.Context) (decimal.Decimal, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return snap.TotalBurned, nil
}
