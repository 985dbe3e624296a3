package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/xenartist/memo.rip/pkg/burn"
)

// Store backends.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Store       StoreConfig       `yaml:"store"`
	RPC         RPCConfig         `yaml:"rpc"`
	Token       TokenConfig       `yaml:"token"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Cache       CacheConfig       `yaml:"cache"`
	Gateway     GatewayConfig     `yaml:"gateway"`
	Reconciler  ReconcilerConfig  `yaml:"reconciler"`
	Sweeper     SweeperConfig     `yaml:"sweeper"`
	Monitoring  MonitoringConfig  `yaml:"monitoring"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"3000" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"75s" validate:"gt=0"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" default:"1048576" validate:"gt=0"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host        string `yaml:"host" default:"localhost"`
	Port        int    `yaml:"port" default:"5432"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	Database    string `yaml:"database" default:"burns"`
	SSLMode     string `yaml:"ssl_mode" default:"disable"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// StoreConfig selects the burn store backend
type StoreConfig struct {
	Backend string `yaml:"backend" default:"postgres" validate:"oneof=postgres memory"`
}

// RPCConfig contains upstream node settings. Endpoints are reread at ReloadInterval.
type RPCConfig struct {
	Endpoints      []string      `yaml:"endpoints" validate:"required,min=1,dive,url"`
	ReloadInterval time.Duration `yaml:"reload_interval" default:"1m"`
	RequestTimeout time.Duration `yaml:"request_timeout" default:"30s" validate:"gt=0"`
}

// TokenConfig describes the tracked SPL token
type TokenConfig struct {
	// Mint restricts reconciliation to burns of this mint when set.
	Mint        string `yaml:"mint"`
	Decimals    int32  `yaml:"decimals" default:"6" validate:"min=0,max=18"`
	TotalSupply uint64 `yaml:"total_supply" default:"58294721418" validate:"gt=0"`
}

// LeaderboardConfig bounds the aggregate views
type LeaderboardConfig struct {
	TopN            int    `yaml:"top_n" default:"10" validate:"min=1"`
	AddressTopN     int    `yaml:"address_top_n" default:"69" validate:"min=1"`
	MinAddressTotal uint64 `yaml:"min_address_total" default:"420"`
}

// Limits converts the leaderboard bounds to query limits.
func (c LeaderboardConfig) Limits() burn.Limits {
	return burn.Limits{
		TopN:            c.TopN,
		AddressTopN:     c.AddressTopN,
		MinAddressTotal: decimal.NewFromUint64(c.MinAddressTotal),
	}
}

// CacheConfig contains read cache settings
type CacheConfig struct {
	TTL            time.Duration `yaml:"ttl" default:"5m" validate:"gt=0"`
	RefreshTimeout time.Duration `yaml:"refresh_timeout" default:"30s" validate:"gt=0"`
}

// GatewayConfig contains confirmation polling settings for the proxy
type GatewayConfig struct {
	ConfirmationMethod string        `yaml:"confirmation_method" default:"getSignatureStatuses"`
	MaxPollAttempts    int           `yaml:"max_poll_attempts" default:"30" validate:"min=1"`
	PollInterval       time.Duration `yaml:"poll_interval" default:"2s"`
	PollBudget         time.Duration `yaml:"poll_budget" default:"70s" validate:"gt=0"`
	SettleDelay        time.Duration `yaml:"settle_delay" default:"15s"`
}

// ReconcilerConfig contains reconciliation worker settings
type ReconcilerConfig struct {
	MaxAttempts     int           `yaml:"max_attempts" default:"3" validate:"min=1"`
	RetryDelay      time.Duration `yaml:"retry_delay" default:"30s"`
	AttemptTimeout  time.Duration `yaml:"attempt_timeout" default:"30s" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// SweeperConfig contains unreconciled-row sweep settings
type SweeperConfig struct {
	Enabled     bool          `yaml:"enabled" default:"true"`
	Interval    time.Duration `yaml:"interval" default:"10m" validate:"gt=0"`
	BatchSize   int           `yaml:"batch_size" default:"10" validate:"min=1"`
	ItemDelay   time.Duration `yaml:"item_delay" default:"30s"`
	MaxAttempts int           `yaml:"max_attempts" default:"1" validate:"min=1"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled     bool   `yaml:"enabled" default:"true"`
	MetricsPath string `yaml:"metrics_path" default:"/metrics"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load loads configuration from a YAML file. ${VAR} references are
// expanded from the environment before decoding.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints and cross-section rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Store.Backend == BackendPostgres && c.Database.Host == "" {
		return errors.New("database.host is required for the postgres store")
	}
	if c.Gateway.PollBudget >= c.Server.RequestTimeout {
		return fmt.Errorf("gateway.poll_budget (%s) must be shorter than server.request_timeout (%s)",
			c.Gateway.PollBudget, c.Server.RequestTimeout)
	}
	return nil
}

// LoadRPCEndpoints rereads only the rpc.endpoints list from configPath.
func LoadRPCEndpoints(configPath string) ([]string, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var doc struct {
		RPC struct {
			Endpoints []string `yaml:"endpoints" validate:"required,min=1,dive,url"`
		} `yaml:"rpc"`
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate.Struct(&doc.RPC); err != nil {
		return nil, fmt.Errorf("rpc.endpoints: %w", err)
	}
	return doc.RPC.Endpoints, nil
}
