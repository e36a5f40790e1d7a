package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	if content == "" {
		return filepath.Join(tmpDir, "nonexistent.yaml")
	}
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: tokenomics
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_GOVERNANCE"
webhook:
  urls:
    - "https://hooks.example.com/governance"
  secret: "whsec"
  event_types: ["vote.cast", "proposal.executed"]
rate_limit:
  requests_per_second: 20
  burst: 40
  redis_addr: "localhost:6379"
ethereum:
  rpc_url: "http://localhost:8545"
  max_retries: 5
auth:
  jwt_public_key: "-----BEGIN PUBLIC KEY-----"
  api_keys:
    - key-1
    - key-2
governance:
  execution_delay: "24h"
  execution_window: "72h"
  default_quorum_percent: 10
  voting_strategy: quadratic
token:
  decimals: 6
  distribution_path: "testdata/distribution.json"
  contract_address: "0x52908400098527886E0F7030069857D2E4169EE7"
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "tokenomics", cfg.Database.DBName)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_GOVERNANCE", cfg.NATS.StreamName)
				assert.Equal(t, []string{"https://hooks.example.com/governance"}, cfg.Webhook.URLs)
				assert.Equal(t, "whsec", cfg.Webhook.Secret)
				assert.Equal(t, []string{"vote.cast", "proposal.executed"}, cfg.Webhook.EventTypes)
				assert.Equal(t, 20, cfg.RateLimit.RequestsPerSecond)
				assert.Equal(t, 40, cfg.RateLimit.Burst)
				assert.Equal(t, "localhost:6379", cfg.RateLimit.RedisAddr)
				assert.Equal(t, "http://localhost:8545", cfg.Ethereum.RPCURL)
				assert.Equal(t, uint64(5), cfg.Ethereum.MaxRetries)
				assert.Equal(t, []string{"key-1", "key-2"}, cfg.Auth.APIKeys)
				assert.Equal(t, 24*time.Hour, cfg.Governance.ExecutionDelay)
				assert.Equal(t, 72*time.Hour, cfg.Governance.ExecutionWindow)
				assert.Equal(t, uint64(10), cfg.Governance.DefaultQuorumPercent)
				assert.Equal(t, uint64(51), cfg.Governance.DefaultRequiredMajority)
				assert.Equal(t, "quadratic", cfg.Governance.VotingStrategy)
				assert.Equal(t, uint8(6), cfg.Token.Decimals)
				assert.Equal(t, "testdata/distribution.json", cfg.Token.DistributionPath)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: tokenomics
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Server.ReadTimeout)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "GOVERNANCE_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Empty(t, cfg.Webhook.URLs)
				assert.Equal(t, []string{"*"}, cfg.Webhook.EventTypes)
				assert.Equal(t, 10*time.Second, cfg.Webhook.Timeout)
				assert.Equal(t, uint64(3), cfg.Webhook.MaxRetries)
				assert.Equal(t, 0, cfg.RateLimit.RequestsPerSecond)
				assert.True(t, cfg.RateLimit.EnableLocalFallback)
				assert.Equal(t, 10*time.Second, cfg.RateLimit.RedisRetryInterval)
				assert.Equal(t, uint64(3), cfg.Ethereum.MaxRetries)
				assert.Equal(t, 500*time.Millisecond, cfg.Ethereum.InitialInterval)
				assert.Equal(t, 48*time.Hour, cfg.Governance.ExecutionDelay)
				assert.Equal(t, 14*24*time.Hour, cfg.Governance.ExecutionWindow)
				assert.Equal(t, uint64(4), cfg.Governance.DefaultQuorumPercent)
				assert.Equal(t, "simple", cfg.Governance.VotingStrategy)
				assert.Equal(t, uint8(18), cfg.Token.Decimals)
			},
		},
		{
			name:       "missing config file",
			configFile: "",
		},
		{
			name: "invalid value",
			configFile: `
server:
  port: invalid
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			if tt.validate != nil {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadSweeperConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError string
		validate    func(*testing.T, *SweeperConfig)
	}{
		{
			name: "valid config file",
			configFile: `
database:
  host: localhost
  dbname: tokenomics
proposal_sweeper:
  interval: "30s"
  batch_size: 20
  worker:
    pool_size: 8
    queue_size: 40
`,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				assert.Equal(t, 30*time.Second, cfg.ProposalSweeper.Interval)
				assert.Equal(t, 20, cfg.ProposalSweeper.BatchSize)
				assert.Equal(t, 8, cfg.ProposalSweeper.Worker.WorkerPoolSize)
				assert.Equal(t, 40, cfg.ProposalSweeper.Worker.WorkerQueueSize)
				assert.Equal(t, 5, cfg.Database.MaxOpenConns)
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
			},
		},
		{
			name: "defaults",
			configFile: `
database:
  host: localhost
  dbname: tokenomics
`,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				assert.Equal(t, time.Minute, cfg.ProposalSweeper.Interval)
				assert.Equal(t, 100, cfg.ProposalSweeper.BatchSize)
				assert.Equal(t, 4, cfg.ProposalSweeper.Worker.WorkerPoolSize)
				assert.Equal(t, 48*time.Hour, cfg.Governance.ExecutionDelay)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: tokenomics
`,
			expectError: "database.host is required",
		},
		{
			name: "missing database name",
			configFile: `
database:
  host: localhost
`,
			expectError: "database.dbname is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadSweeperConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError != "" {
				assert.ErrorContains(t, err, tt.expectError)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadCLIConfig(t *testing.T) {
	cfg, err := LoadCLIConfig(writeConfig(t, `
token:
  distribution_path: "dist.json"
`), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "dist.json", cfg.Token.DistributionPath)
	assert.Equal(t, uint8(18), cfg.Token.Decimals)

	cfg, err = LoadCLIConfig(writeConfig(t, ""), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "config/distribution.json", cfg.Token.DistributionPath)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// Viper uses the FF_TOKENOMICS_ prefix
	envContent := `FF_TOKENOMICS_DEBUG=true
FF_TOKENOMICS_DATABASE_HOST=env-host
FF_TOKENOMICS_DATABASE_PORT=3306
FF_TOKENOMICS_DATABASE_DBNAME=env-db
FF_TOKENOMICS_GOVERNANCE_EXECUTION_DELAY=1h
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))
	t.Cleanup(func() {
		for _, key := range []string{
			"FF_TOKENOMICS_DEBUG",
			"FF_TOKENOMICS_DATABASE_HOST",
			"FF_TOKENOMICS_DATABASE_PORT",
			"FF_TOKENOMICS_DATABASE_DBNAME",
			"FF_TOKENOMICS_GOVERNANCE_EXECUTION_DELAY",
		} {
			_ = os.Unsetenv(key)
		}
	})

	configPath := writeConfig(t, `
debug: false
database:
  host: file-host
  port: 5432
  dbname: file-db
`)

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)

	// The .env file is loaded via godotenv.Overload, so its values win over the config file
	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, time.Hour, cfg.Governance.ExecutionDelay)
}
