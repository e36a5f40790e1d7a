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
	"github.com/feral-file/ff-tokenomics/internal/config"
	"github.com/feral-file/ff-tokenomics/internal/governance"
	"github.com/feral-file/ff-tokenomics/internal/logger"
	"github.com/feral-file/ff-tokenomics/internal/messaging"
	"github.com/feral-file/ff-tokenomics/internal/providers/jetstream"
	"github.com/feral-file/ff-tokenomics/internal/store"
	"github.com/feral-file/ff-tokenomics/internal/sweeper"
	"github.com/feral-file/ff-tokenomics/internal/webhook"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	once       = flag.Bool("once", false, "Run a single sweep cycle and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "proposal-sweeper",
		Environment:     cfg.Environment,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "proposal-sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Proposal Sweeper")

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

	// Initialize clock adapter
	clock := adapter.NewClock()

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
		}, adapter.NewNatsJetStream(), adapter.NewJSON())
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
	}

	var publisher messaging.Publisher = messaging.NopPublisher{}
	if len(publishers) > 0 {
		publisher = messaging.NewMultiPublisher(publishers...)
	} else {
		logger.WarnCtx(ctx, "No NATS URL or webhook configured, status changes will not be published")
	}
	defer publisher.Close()

	evaluator := governance.NewEvaluator(cfg.Governance.ExecutionDelay, cfg.Governance.ExecutionWindow, cfg.Token.Decimals)

	// Initialize proposal status sweeper
	sweeperConfig := &sweeper.ProposalStatusSweeperConfig{
		Interval:       cfg.ProposalSweeper.Interval,
		BatchSize:      cfg.ProposalSweeper.BatchSize,
		WorkerPoolSize: cfg.ProposalSweeper.Worker.WorkerPoolSize,
		QueueSize:      cfg.ProposalSweeper.Worker.WorkerQueueSize,
	}
	proposalSweeper := sweeper.NewProposalStatusSweeper(sweeperConfig, dataStore, evaluator, publisher, clock)

	if *once {
		result, err := proposalSweeper.RunCycle(ctx)
		if err != nil {
			logger.FatalCtx(ctx, "Sweep cycle failed", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Sweep cycle finished",
			zap.Int32("checked", result.Checked),
			zap.Int32("changed", result.Changed),
			zap.Int32("failed", result.Failed),
		)
		return
	}

	logger.InfoCtx(ctx, "Initialized proposal status sweeper (continuous mode)",
		zap.Duration("interval", sweeperConfig.Interval),
		zap.Int("batch_size", sweeperConfig.BatchSize),
		zap.Int("worker_pool_size", sweeperConfig.WorkerPoolSize),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := proposalSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Give the sweeper time to finish the current cycle
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := proposalSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	// Cancel context to abort anything still in flight
	cancel()

	logger.InfoCtx(shutdownCtx, "Proposal sweeper stopped")
}
