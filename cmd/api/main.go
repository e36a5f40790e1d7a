package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-tokenomics/internal/adapter"
	"github.com/feral-file/ff-tokenomics/internal/api/middleware"
	"github.com/feral-file/ff-tokenomics/internal/api/server"
	"github.com/feral-file/ff-tokenomics/internal/api/shared/executor"
	"github.com/feral-file/ff-tokenomics/internal/config"
	"github.com/feral-file/ff-tokenomics/internal/distribution"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/governance"
	"github.com/feral-file/ff-tokenomics/internal/logger"
	"github.com/feral-file/ff-tokenomics/internal/messaging"
	"github.com/feral-file/ff-tokenomics/internal/oracle"
	"github.com/feral-file/ff-tokenomics/internal/providers/jetstream"
	"github.com/feral-file/ff-tokenomics/internal/ratelimit"
	"github.com/feral-file/ff-tokenomics/internal/store"
	"github.com/feral-file/ff-tokenomics/internal/webhook"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "api-server",
		Environment:     cfg.Environment,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Tokenomics API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	// Load distribution. The distribution endpoints answer 404 without one.
	var document *distribution.Document
	if cfg.Token.DistributionPath != "" {
		document, err = distribution.NewLoader(fs, jsonAdapter).Load(cfg.Token.DistributionPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load distribution",
				zap.Error(err),
				zap.String("path", cfg.Token.DistributionPath))
		}
		logger.InfoCtx(ctx, "Loaded distribution",
			zap.String("path", cfg.Token.DistributionPath),
			zap.String("symbol", document.Distribution.Symbol),
			zap.Int("allocations", len(document.Distribution.Allocations)),
			zap.Int("grants", len(document.Grants)),
		)

		if _, err := executor.SeedDocumentGrants(ctx, dataStore, document); err != nil {
			logger.FatalCtx(ctx, "Failed to seed distribution grants", zap.Error(err))
		}
	} else {
		logger.WarnCtx(ctx, "Distribution path not configured, distribution endpoints are disabled")
	}

	// Initialize balance oracle
	var balanceOracle oracle.BalanceOracle
	if cfg.Ethereum.RPCURL != "" {
		ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err))
		}
		defer ethClient.Close()

		balanceOracle, err = oracle.NewERC20Oracle(oracle.ERC20Config{
			ContractAddress: cfg.Token.ContractAddress,
			MaxRetries:      cfg.Ethereum.MaxRetries,
			InitialInterval: cfg.Ethereum.InitialInterval,
			CallTimeout:     cfg.Ethereum.CallTimeout,
		}, ethClient)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create ERC-20 oracle", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Reading balances from token contract", zap.String("contract", cfg.Token.ContractAddress))
	} else {
		if document == nil {
			logger.FatalCtx(ctx, "Either ethereum.rpc_url or token.distribution_path must be configured")
		}
		balanceOracle, err = oracle.NewStaticOracleFromGrants(document.Distribution.TotalSupply, document.Grants)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create static oracle", zap.Error(err))
		}
		logger.WarnCtx(ctx, "Ethereum RPC not configured, serving balances from the distribution grants")
	}

	// Initialize event publishers
	var publishers []messaging.Publisher
	if cfg.NATS.URL != "" {
		natsPublisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			MaxAge:         cfg.NATS.MaxAge,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err))
		}
		publishers = append(publishers, natsPublisher)
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	}
	if len(cfg.Webhook.URLs) > 0 {
		webhookPublisher, err := webhook.NewPublisher(webhook.Config{
			URLs:       cfg.Webhook.URLs,
			Secret:     cfg.Webhook.Secret,
			EventTypes: cfg.Webhook.EventTypes,
			MaxRetries: cfg.Webhook.MaxRetries,
		}, adapter.NewHTTPClient(cfg.Webhook.Timeout), clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create webhook publisher", zap.Error(err))
		}
		publishers = append(publishers, webhookPublisher)
		logger.InfoCtx(ctx, "Delivering governance events to webhooks", zap.Int("urls", len(cfg.Webhook.URLs)))
	}

	var publisher messaging.Publisher = messaging.NopPublisher{}
	if len(publishers) > 0 {
		publisher = messaging.NewMultiPublisher(publishers...)
	} else {
		logger.WarnCtx(ctx, "No NATS URL or webhook configured, governance events will not be published")
	}
	defer publisher.Close()

	strategy, err := domain.ParseVotingStrategy(cfg.Governance.VotingStrategy)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid voting strategy", zap.Error(err))
	}

	evaluator := governance.NewEvaluator(cfg.Governance.ExecutionDelay, cfg.Governance.ExecutionWindow, cfg.Token.Decimals)
	exec := executor.NewExecutor(executor.Config{
		Decimals:                cfg.Token.Decimals,
		DefaultQuorumPercent:    cfg.Governance.DefaultQuorumPercent,
		DefaultRequiredMajority: cfg.Governance.DefaultRequiredMajority,
		DefaultVotingStrategy:   strategy,
	}, dataStore, balanceOracle, evaluator, publisher, clock, document)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Initialize rate limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		var redisClient adapter.RedisClient
		if cfg.RateLimit.RedisAddr != "" {
			redisClient = adapter.NewRedisClient(cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, cfg.RateLimit.RedisDB)
		}
		limiter, err := ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerSecond:   cfg.RateLimit.RequestsPerSecond,
			Burst:               cfg.RateLimit.Burst,
			RedisKeyPrefix:      cfg.RateLimit.RedisKeyPrefix,
			EnableLocalFallback: cfg.RateLimit.EnableLocalFallback,
			RedisRetryInterval:  cfg.RateLimit.RedisRetryInterval,
		}, redisClient, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
		}
		defer func() {
			_ = limiter.Close()
		}()
		serverConfig.RateLimiter = limiter
	}

	// Create and start server
	srv := server.New(serverConfig, exec)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
