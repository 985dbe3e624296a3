package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/xenartist/memo.rip/pkg/app/http"
	"github.com/xenartist/memo.rip/pkg/burnstore"
	"github.com/xenartist/memo.rip/pkg/cache"
	"github.com/xenartist/memo.rip/pkg/config"
	"github.com/xenartist/memo.rip/pkg/gateway"
	lbservice "github.com/xenartist/memo.rip/pkg/leaderboard/service"
	"github.com/xenartist/memo.rip/pkg/reconciler"
	"github.com/xenartist/memo.rip/pkg/solana"
)

// Components is the wired object graph of the API server.
type Components struct {
	cfg    *config.Config
	logger *zap.Logger

	Client      *solana.Client
	Reloader    *solana.EndpointReloader
	Cache       *cache.Cache
	Worker      *reconciler.Worker
	Sweeper     *reconciler.Sweeper
	Gateway     *gateway.Gateway
	Leaderboard lbservice.Service
	Router      chi.Router

	stopped bool
}

// NewComponents wires every component over store. endpoints, when non-nil,
// is polled for RPC endpoint changes.
func NewComponents(cfg *config.Config, store burnstore.Store, endpoints solana.EndpointSource, logger *zap.Logger) *Components {
	c := &Components{cfg: cfg, logger: logger}

	c.Client = solana.NewClient(cfg.RPC.Endpoints,
		solana.WithTimeout(cfg.RPC.RequestTimeout),
		solana.WithLogger(logger.Named("rpc")),
	)
	if endpoints != nil && cfg.RPC.ReloadInterval > 0 {
		c.Reloader = solana.NewEndpointReloader(c.Client, endpoints, cfg.RPC.ReloadInterval, logger.Named("rpc"))
	}

	c.Cache = cache.New(store, cfg.Leaderboard.Limits(), logger.Named("cache"),
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithRefreshTimeout(cfg.Cache.RefreshTimeout),
	)

	c.Worker = reconciler.NewWorker(c.Client, store, c.Cache, reconciler.WorkerConfig{
		MaxAttempts:    cfg.Reconciler.MaxAttempts,
		RetryDelay:     cfg.Reconciler.RetryDelay,
		AttemptTimeout: cfg.Reconciler.AttemptTimeout,
		Mint:           cfg.Token.Mint,
	}, logger.Named("reconciler"))

	c.Sweeper = reconciler.NewSweeper(c.Worker, store, reconciler.SweeperConfig{
		Interval:    cfg.Sweeper.Interval,
		BatchSize:   cfg.Sweeper.BatchSize,
		ItemDelay:   cfg.Sweeper.ItemDelay,
		MaxAttempts: cfg.Sweeper.MaxAttempts,
	}, logger.Named("sweeper"))

	c.Gateway = gateway.New(c.Client, store, c.Worker, gateway.Config{
		ConfirmationMethod: cfg.Gateway.ConfirmationMethod,
		MaxPollAttempts:    cfg.Gateway.MaxPollAttempts,
		PollInterval:       cfg.Gateway.PollInterval,
		PollBudget:         cfg.Gateway.PollBudget,
		SettleDelay:        cfg.Gateway.SettleDelay,
	}, logger.Named("gateway"))

	c.Leaderboard = lbservice.NewLog(lbservice.NewService(c.Cache, store, lbservice.Config{
		Decimals:    cfg.Token.Decimals,
		TotalSupply: cfg.Token.TotalSupply,
	}, logger), logger.Named("leaderboard"))

	c.Router = c.setupRouter()
	return c
}

func (c *Components) setupRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(c.cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		apphttp.WriteJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	if c.cfg.Monitoring.Enabled {
		r.Handle(c.cfg.Monitoring.MetricsPath, promhttp.Handler())
	}

	gateway.RegisterRoutes(r, c.Gateway, c.cfg.Server.MaxBodyBytes, c.logger.Named("proxy"))
	lbservice.RegisterRoutes(r, c.Leaderboard, c.logger)

	return r
}

// Start launches the background loops.
func (c *Components) Start() {
	if c.Reloader != nil {
		c.Reloader.Start()
	}
	if c.cfg.Sweeper.Enabled {
		c.Sweeper.Start()
	}
}

// Stop halts background loops and drains scheduled reconciliations. It is
// safe to call more than once.
func (c *Components) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true

	c.Sweeper.Stop()
	if c.Reloader != nil {
		c.Reloader.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Reconciler.ShutdownTimeout)
	defer cancel()
	if err := c.Worker.Shutdown(ctx); err != nil {
		c.logger.Warn("Reconciliation drain incomplete", zap.Error(err))
	}
}
