// Package api implements app.Runner for the API server process.
package api

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	apphttp "github.com/xenartist/memo.rip/pkg/app/http"
	"github.com/xenartist/memo.rip/pkg/burnstore"
	"github.com/xenartist/memo.rip/pkg/config"
	"github.com/xenartist/memo.rip/pkg/migrations/burndb"
	"github.com/xenartist/memo.rip/pkg/pgutil"
	mghelper "github.com/xenartist/memo.rip/pkg/pgutil/migrations"
)

// Server holds cfg to init the api server.
type Server struct {
	cfg        *config.Config
	configPath string
}

// NewServer initializes new api server. configPath is reread for RPC
// endpoint changes while the server runs.
func NewServer(cfg *config.Config, configPath string) *Server {
	return &Server{cfg: cfg, configPath: configPath}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("api server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting burn tracker API server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Backend),
		zap.Int("rpc_endpoints", len(cfg.RPC.Endpoints)),
	)

	store, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	components := NewComponents(cfg, store, s.endpointSource(), logger)
	components.Start()
	// Stopped explicitly after ServeAndWait for a deterministic shutdown order.
	defer components.Stop()

	err = apphttp.ServeAndWait(ctx, components.Router, logger, &cfg.Server)

	components.Stop()
	return err
}

func (s *Server) endpointSource() func() ([]string, error) {
	if s.configPath == "" {
		return nil
	}
	return func() ([]string, error) { return config.LoadRPCEndpoints(s.configPath) }
}

// OpenStore opens the configured burn store. The returned func releases it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (burnstore.Store, func(), error) {
	if cfg.Store.Backend == config.BackendMemory {
		logger.Warn("Using in-memory burn store, records are lost on restart")
		return burnstore.NewMemoryStore(), func() {}, nil
	}

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	if cfg.Database.AutoMigrate {
		group, err := mghelper.Up(ctx, migrate.NewMigrator(db, burndb.Migrations))
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate db: %w", err)
		}
		logger.Info("Database schema up to date", zap.String("applied", group.String()))
	}

	return burnstore.NewStore(db), func() { _ = db.Close() }, nil
}
