package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
rpc:
  endpoints:
    - https://api.mainnet-beta.solana.com
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, uint64(58294721418), cfg.Token.TotalSupply)
	assert.Equal(t, int32(6), cfg.Token.Decimals)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 15*time.Second, cfg.Gateway.SettleDelay)
	assert.Equal(t, 70*time.Second, cfg.Gateway.PollBudget)
	assert.Less(t, cfg.Gateway.PollBudget, cfg.Server.RequestTimeout)
	assert.Equal(t, 3, cfg.Reconciler.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Reconciler.RetryDelay)
	assert.True(t, cfg.Sweeper.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Sweeper.Interval)
	assert.Equal(t, 10, cfg.Sweeper.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.Sweeper.ItemDelay)
	assert.Equal(t, "info", cfg.Logging.Level)

	limits := cfg.Leaderboard.Limits()
	assert.Equal(t, 10, limits.TopN)
	assert.Equal(t, 69, limits.AddressTopN)
	assert.Equal(t, "420", limits.MinAddressTotal.String())
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "s3cret")

	cfg, err := Parse([]byte(`
server:
  port: 8081
database:
  password: ${TEST_DB_PASSWORD}
store:
  backend: memory
rpc:
  endpoints: [http://a, http://b]
  reload_interval: 10s
sweeper:
  enabled: false
  item_delay: 0s
logging:
  level: debug
  format: console
`))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.RPC.Endpoints)
	assert.Equal(t, 10*time.Second, cfg.RPC.ReloadInterval)
	assert.False(t, cfg.Sweeper.Enabled)
	assert.Zero(t, cfg.Sweeper.ItemDelay)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no endpoints", `rpc: {endpoints: []}`},
		{"bad endpoint", `rpc: {endpoints: ["not a url"]}`},
		{"bad backend", minimalConfig + "store: {backend: sqlite}"},
		{"bad level", minimalConfig + "logging: {level: loud}"},
		{"zero ttl", minimalConfig + "cache: {ttl: 0s}"},
		{"postgres without host", minimalConfig + "database: {host: ''}"},
		{"broken yaml", "rpc: ["},
		{"poll budget past request deadline", minimalConfig + "server: {request_timeout: 60s}\ngateway: {poll_budget: 60s}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.Len(t, cfg.RPC.Endpoints, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRPCEndpoints(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	endpoints, err := LoadRPCEndpoints(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://api.mainnet-beta.solana.com"}, endpoints)

	require.NoError(t, os.WriteFile(path, []byte("rpc:\n  endpoints: [http://x, http://y]\n"), 0o600))
	endpoints, err = LoadRPCEndpoints(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://x", "http://y"}, endpoints)

	require.NoError(t, os.WriteFile(path, []byte("rpc:\n  endpoints: []\n"), 0o600))
	_, err = LoadRPCEndpoints(path)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = NewLogger(LoggingConfig{Level: "info", Format: "json", OutputPath: filepath.Join(t.TempDir(), "app.log")})
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	_, err = NewLogger(LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}
