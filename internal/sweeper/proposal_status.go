package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-tokenomics/internal/adapter"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/governance"
	"github.com/feral-file/ff-tokenomics/internal/logger"
	"github.com/feral-file/ff-tokenomics/internal/messaging"
	"github.com/feral-file/ff-tokenomics/internal/store"
	"github.com/feral-file/ff-tokenomics/internal/store/schema"
	"github.com/feral-file/ff-tokenomics/internal/types"
)

// LastCycleKey is the key-value entry holding the completion time of the last sweep cycle
const LastCycleKey = "proposal_sweeper:last_cycle_at"

// ProposalStatusSweeperConfig holds configuration for the proposal status sweeper
type ProposalStatusSweeperConfig struct {
	Interval       time.Duration // Time to sleep between sweep cycles
	BatchSize      int           // Proposals loaded per page
	WorkerPoolSize int           // Concurrent evaluations
	QueueSize      int           // Pending evaluations before Submit blocks
	// UpdateMaxElapsed bounds the retries of a single status update
	UpdateMaxElapsed time.Duration
}

// CycleResult summarizes one sweep cycle
type CycleResult struct {
	Checked int32
	Changed int32
	Failed  int32
}

// proposalStatusSweeper re-evaluates non-terminal proposals and persists the status transitions
// that happen with the passage of time (pending to active, active to succeeded, queued to expired...)
type proposalStatusSweeper struct {
	config    *ProposalStatusSweeperConfig
	store     store.Store
	evaluator *governance.Evaluator
	publisher messaging.Publisher
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// ProposalStatusSweeper is a Sweeper that can also run a single cycle on demand
type ProposalStatusSweeper interface {
	Sweeper
	RunCycle(ctx context.Context) (CycleResult, error)
}

// NewProposalStatusSweeper creates a new proposal status sweeper
func NewProposalStatusSweeper(
	config *ProposalStatusSweeperConfig,
	st store.Store,
	evaluator *governance.Evaluator,
	publisher messaging.Publisher,
	clock adapter.Clock,
) ProposalStatusSweeper {
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 4
	}
	if config.QueueSize <= 0 {
		config.QueueSize = config.BatchSize
	}
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}
	if config.UpdateMaxElapsed <= 0 {
		config.UpdateMaxElapsed = time.Minute
	}

	return &proposalStatusSweeper{
		config:    config,
		store:     st,
		evaluator: evaluator,
		publisher: publisher,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *proposalStatusSweeper) Name() string {
	return "proposal-status-sweeper"
}

// Start begins the sweeper's main loop
func (s *proposalStatusSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting proposal status sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	for {
		if _, err := s.RunCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		if !s.sleep(ctx, s.config.Interval) {
			select {
			case <-ctx.Done():
				logger.InfoCtx(ctx, "Proposal status sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			default:
				logger.InfoCtx(ctx, "Proposal status sweeper stop requested")
			}
			return nil
		}
	}
}

// Stop gracefully stops the sweeper
func (s *proposalStatusSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping proposal status sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Proposal status sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Proposal status sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// RunCycle pages through every non-terminal proposal once and persists the status changes
func (s *proposalStatusSweeper) RunCycle(ctx context.Context) (CycleResult, error) {
	startTime := s.clock.Now()
	logger.InfoCtx(ctx, "Starting sweep cycle")

	pool := pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.QueueSize),
		pond.WithContext(ctx),
	)
	defer pool.StopAndWait()

	var checked, changed, failed atomic.Int32
	afterID := ""
	for {
		proposals, err := s.store.ListProposalsForSweep(ctx, afterID, s.config.BatchSize)
		if err != nil {
			return CycleResult{}, fmt.Errorf("failed to list proposals for sweep: %w", err)
		}
		if len(proposals) == 0 {
			break
		}

		// Every proposal in a cycle is judged at the same instant
		now := s.clock.Now()
		group := pool.NewGroup()
		for _, p := range proposals {
			group.Submit(func() {
				checked.Add(1)
				ok, err := s.sweepProposal(ctx, p, now)
				switch {
				case err != nil:
					failed.Add(1)
					logger.ErrorCtx(ctx, err, zap.String("proposal_id", p.ID))
				case ok:
					changed.Add(1)
				}
			})
		}
		if err := group.Wait(); err != nil {
			return CycleResult{}, err
		}

		afterID = proposals[len(proposals)-1].ID
		if len(proposals) < s.config.BatchSize {
			break
		}
	}

	result := CycleResult{Checked: checked.Load(), Changed: changed.Load(), Failed: failed.Load()}

	if err := s.store.SetKeyValue(ctx, LastCycleKey, s.clock.Now().Format(time.RFC3339)); err != nil {
		logger.WarnCtx(ctx, "Failed to record sweep cycle", zap.Error(err))
	}

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int32("checked", result.Checked),
		zap.Int32("changed", result.Changed),
		zap.Int32("failed", result.Failed),
	)

	return result, nil
}

// sweepProposal evaluates one proposal and persists its status when it changed
func (s *proposalStatusSweeper) sweepProposal(ctx context.Context, row *schema.Proposal, now time.Time) (bool, error) {
	proposal := types.ProposalFromSchema(row)
	status := s.evaluator.EvaluateProposalState(proposal, now)
	if status == row.Status {
		return false, nil
	}

	if err := s.updateStatusWithRetry(ctx, proposal, row.Status, status); err != nil {
		if errors.Is(err, domain.ErrState) {
			logger.DebugCtx(ctx, "Proposal changed during sweep, skipping", zap.String("proposal_id", row.ID))
			return false, nil
		}
		return false, err
	}

	logger.InfoCtx(ctx, "Proposal status changed",
		zap.String("proposal_id", row.ID),
		zap.String("from", string(row.Status)),
		zap.String("to", string(status)),
	)

	event := messaging.NewGovernanceEvent(domain.GovernanceEventProposalStatusChanged, row.ID, now, messaging.StatusChange{
		From: row.Status,
		To:   status,
	})
	if err := s.publisher.PublishGovernanceEvent(ctx, event); err != nil {
		// The new status is persisted, subscribers can catch up from the API
		logger.WarnCtx(ctx, "Failed to publish status change", zap.String("proposal_id", row.ID), zap.Error(err))
	}

	return true, nil
}

// updateStatusWithRetry moves a proposal from one status to another with exponential backoff
func (s *proposalStatusSweeper) updateStatusWithRetry(ctx context.Context, proposal *governance.Proposal, from, to domain.ProposalStatus) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = s.config.UpdateMaxElapsed
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	operation := func() error {
		_, err := s.store.UpdateProposalState(ctx, store.UpdateProposalStateInput{
			ID:             proposal.ID,
			Status:         to,
			ExpectedStatus: from,
		})
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrState) {
			return backoff.Permanent(err)
		}
		return err
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Failed to update proposal status, retrying",
			zap.String("proposal_id", proposal.ID),
			zap.Int("attempt", attemptCount),
			zap.Duration("retry_in", duration),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return fmt.Errorf("failed to update status of proposal %s: %w", proposal.ID, err)
	}

	return nil
}

// sleep sleeps for the given duration but can be interrupted by context cancellation or Stop.
// Returns true if sleep completed normally.
func (s *proposalStatusSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
