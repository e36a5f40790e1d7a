package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug       bool   `mapstructure:"debug"`
	SentryDSN   string `mapstructure:"sentry_dsn"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration.
// An empty URL disables event publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	MaxAge         time.Duration `mapstructure:"max_age"`
}

// EthereumConfig holds the RPC settings of the balance oracle.
// An empty RPC URL makes the services fall back to balances declared in the distribution file.
type EthereumConfig struct {
	RPCURL          string        `mapstructure:"rpc_url"`
	MaxRetries      uint64        `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	CallTimeout     time.Duration `mapstructure:"call_timeout"`
}

// WebhookConfig holds the endpoints receiving signed governance events.
// No URLs disables webhook delivery.
type WebhookConfig struct {
	URLs       []string      `mapstructure:"urls"`
	Secret     string        `mapstructure:"secret"`
	EventTypes []string      `mapstructure:"event_types"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries uint64        `mapstructure:"max_retries"`
}

// RateLimitConfig holds the per-client request limit of the API server.
// Zero requests per second disables limiting, an empty Redis address keeps buckets in process.
type RateLimitConfig struct {
	RequestsPerSecond   int           `mapstructure:"requests_per_second"`
	Burst               int           `mapstructure:"burst"`
	RedisAddr           string        `mapstructure:"redis_addr"`
	RedisPassword       string        `mapstructure:"redis_password"`
	RedisDB             int           `mapstructure:"redis_db"`
	RedisKeyPrefix      string        `mapstructure:"redis_key_prefix"`
	EnableLocalFallback bool          `mapstructure:"enable_local_fallback"`
	RedisRetryInterval  time.Duration `mapstructure:"redis_retry_interval"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// GovernanceConfig holds the timelock and the defaults applied to new proposals
type GovernanceConfig struct {
	ExecutionDelay          time.Duration `mapstructure:"execution_delay"`
	ExecutionWindow         time.Duration `mapstructure:"execution_window"`
	DefaultQuorumPercent    uint64        `mapstructure:"default_quorum_percent"`
	DefaultRequiredMajority uint64        `mapstructure:"default_required_majority"`
	VotingStrategy          string        `mapstructure:"voting_strategy"`
}

// TokenConfig describes the governed token
type TokenConfig struct {
	Decimals         uint8  `mapstructure:"decimals"`
	DistributionPath string `mapstructure:"distribution_path"`
	ContractAddress  string `mapstructure:"contract_address"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// ProposalSweeperConfig holds configuration for the proposal status sweeper
type ProposalSweeperConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	Worker    WorkerConfig  `mapstructure:"worker"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
	Ethereum   EthereumConfig   `mapstructure:"ethereum"`
	Auth       AuthConfig       `mapstructure:"auth"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Governance GovernanceConfig `mapstructure:"governance"`
	Token      TokenConfig      `mapstructure:"token"`
}

// SweeperConfig holds configuration for the proposal-sweeper program
type SweeperConfig struct {
	BaseConfig      `mapstructure:",squash"`
	Database        DatabaseConfig        `mapstructure:"database"`
	NATS            NATSConfig            `mapstructure:"nats"`
	Webhook         WebhookConfig         `mapstructure:"webhook"`
	Governance      GovernanceConfig      `mapstructure:"governance"`
	Token           TokenConfig           `mapstructure:"token"`
	ProposalSweeper ProposalSweeperConfig `mapstructure:"proposal_sweeper"`
}

// CLIConfig holds configuration for the offline tokenomics CLI
type CLIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Token      TokenConfig `mapstructure:"token"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setWebhookDefaults(v)
	setEthereumDefaults(v)
	v.SetDefault("rate_limit.requests_per_second", 0)
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.redis_retry_interval", "10s")
	setGovernanceDefaults(v)
	setTokenDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the proposal-sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("proposal-sweeper", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	setNATSDefaults(v)
	setWebhookDefaults(v)
	setGovernanceDefaults(v)
	setTokenDefaults(v)
	v.SetDefault("proposal_sweeper.interval", "1m")
	v.SetDefault("proposal_sweeper.batch_size", 100)
	v.SetDefault("proposal_sweeper.worker.pool_size", 4)
	v.SetDefault("proposal_sweeper.worker.queue_size", 100)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

// LoadCLIConfig loads configuration for the tokenomics CLI
func LoadCLIConfig(configFile string, envPath string) (*CLIConfig, error) {
	v := configureViper("tokenomics", configFile, envPath)

	setTokenDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "GOVERNANCE_EVENTS")
	v.SetDefault("nats.max_age", "720h")
}

func setWebhookDefaults(v *viper.Viper) {
	v.SetDefault("webhook.event_types", []string{"*"})
	v.SetDefault("webhook.timeout", "10s")
	v.SetDefault("webhook.max_retries", 3)
}

func setEthereumDefaults(v *viper.Viper) {
	v.SetDefault("ethereum.max_retries", 3)
	v.SetDefault("ethereum.initial_interval", "500ms")
	v.SetDefault("ethereum.call_timeout", "10s")
}

func setGovernanceDefaults(v *viper.Viper) {
	v.SetDefault("governance.execution_delay", "48h")
	v.SetDefault("governance.execution_window", "336h")
	v.SetDefault("governance.default_quorum_percent", 4)
	v.SetDefault("governance.default_required_majority", 51)
	v.SetDefault("governance.voting_strategy", "simple")
}

func setTokenDefaults(v *viper.Viper) {
	v.SetDefault("token.decimals", 18)
	v.SetDefault("token.distribution_path", "config/distribution.json")
}

// readConfig reads the config file, falling back to environment variables when there is none
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/proposal-sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_TOKENOMICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"environment",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.max_age",
		// Webhook
		"webhook.urls",
		"webhook.secret",
		"webhook.event_types",
		"webhook.timeout",
		"webhook.max_retries",
		// Rate limit
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		"rate_limit.redis_addr",
		"rate_limit.redis_password",
		"rate_limit.redis_db",
		"rate_limit.redis_key_prefix",
		"rate_limit.enable_local_fallback",
		"rate_limit.redis_retry_interval",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.max_retries",
		"ethereum.initial_interval",
		"ethereum.call_timeout",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Governance
		"governance.execution_delay",
		"governance.execution_window",
		"governance.default_quorum_percent",
		"governance.default_required_majority",
		"governance.voting_strategy",
		// Token
		"token.decimals",
		"token.distribution_path",
		"token.contract_address",
		// Proposal sweeper
		"proposal_sweeper.interval",
		"proposal_sweeper.batch_size",
		"proposal_sweeper.worker.pool_size",
		"proposal_sweeper.worker.queue_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
