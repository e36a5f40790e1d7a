package sweeper_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/governance"
	"github.com/feral-file/ff-tokenomics/internal/messaging"
	"github.com/feral-file/ff-tokenomics/internal/mocks"
	"github.com/feral-file/ff-tokenomics/internal/store"
	"github.com/feral-file/ff-tokenomics/internal/store/schema"
	"github.com/feral-file/ff-tokenomics/internal/sweeper"
)

var (
	votingStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	votingEnd   = votingStart.Add(7 * 24 * time.Hour)
)

// testSweeperMocks contains all the mocks needed for testing the sweeper
type testSweeperMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	sweeper   sweeper.ProposalStatusSweeper
}

func setupTestSweeper(t *testing.T, now time.Time, batchSize int) *testSweeperMocks {
	ctrl := gomock.NewController(t)

	tm := &testSweeperMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}

	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	tm.sweeper = sweeper.NewProposalStatusSweeper(
		&sweeper.ProposalStatusSweeperConfig{
			Interval:         time.Minute,
			BatchSize:        batchSize,
			WorkerPoolSize:   2,
			UpdateMaxElapsed: 50 * time.Millisecond,
		},
		tm.store,
		governance.NewEvaluator(48*time.Hour, 14*24*time.Hour, domain.DefaultDecimals),
		tm.publisher,
		tm.clock,
	)

	return tm
}

func proposalRow(id string, status domain.ProposalStatus, forVotes, against uint64) *schema.Proposal {
	return &schema.Proposal{
		ID:                      id,
		Proposer:                "0x52908400098527886E0F7030069857D2E4169EE7",
		Title:                   id,
		ForVotes:                amount.FromUint64(forVotes),
		AgainstVotes:            amount.FromUint64(against),
		QuorumPercent:           4,
		RequiredMajorityPercent: 51,
		VotingStrategy:          domain.VotingStrategySimple,
		SupplySnapshot:          amount.FromUint64(10_000_000),
		StartTime:               votingStart,
		EndTime:                 votingEnd,
		Status:                  status,
	}
}

func TestProposalStatusSweeper_Name(t *testing.T) {
	tm := setupTestSweeper(t, votingStart, 10)
	defer tm.ctrl.Finish()

	assert.Equal(t, "proposal-status-sweeper", tm.sweeper.Name())
}

func TestProposalStatusSweeper_RunCycle(t *testing.T) {
	now := votingEnd.Add(time.Hour)
	tm := setupTestSweeper(t, now, 10)
	defer tm.ctrl.Finish()

	rows := []*schema.Proposal{
		proposalRow("a", domain.ProposalStatusActive, 500_000, 100_000),  // succeeded
		proposalRow("b", domain.ProposalStatusActive, 300_000, 50_000),   // defeated: quorum not reached
		proposalRow("c", domain.ProposalStatusSucceeded, 500_000, 1_000), // unchanged
	}

	tm.store.EXPECT().ListProposalsForSweep(gomock.Any(), "", 10).Return(rows, nil)
	tm.store.EXPECT().
		UpdateProposalState(gomock.Any(), store.UpdateProposalStateInput{
			ID:             "a",
			Status:         domain.ProposalStatusSucceeded,
			ExpectedStatus: domain.ProposalStatusActive,
		}).
		Return(&schema.Proposal{}, nil)
	tm.store.EXPECT().
		UpdateProposalState(gomock.Any(), store.UpdateProposalStateInput{
			ID:             "b",
			Status:         domain.ProposalStatusDefeated,
			ExpectedStatus: domain.ProposalStatusActive,
		}).
		Return(&schema.Proposal{}, nil)

	var mu sync.Mutex
	published := map[string]messaging.StatusChange{}
	tm.publisher.EXPECT().
		PublishGovernanceEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *messaging.GovernanceEvent) error {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, domain.GovernanceEventProposalStatusChanged, event.Type)
			published[event.ProposalID] = event.Data.(messaging.StatusChange)
			return nil
		}).
		Times(2)
	tm.store.EXPECT().SetKeyValue(gomock.Any(), sweeper.LastCycleKey, now.Format(time.RFC3339)).Return(nil)

	result, err := tm.sweeper.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sweeper.CycleResult{Checked: 3, Changed: 2, Failed: 0}, result)
	assert.Equal(t, messaging.StatusChange{From: domain.ProposalStatusActive, To: domain.ProposalStatusSucceeded}, published["a"])
	assert.Equal(t, messaging.StatusChange{From: domain.ProposalStatusActive, To: domain.ProposalStatusDefeated}, published["b"])
}

func TestProposalStatusSweeper_RunCyclePages(t *testing.T) {
	now := votingStart.Add(time.Hour)
	tm := setupTestSweeper(t, now, 2)
	defer tm.ctrl.Finish()

	gomock.InOrder(
		tm.store.EXPECT().ListProposalsForSweep(gomock.Any(), "", 2).Return([]*schema.Proposal{
			proposalRow("a", domain.ProposalStatusActive, 0, 0),
			proposalRow("b", domain.ProposalStatusActive, 0, 0),
		}, nil),
		tm.store.EXPECT().ListProposalsForSweep(gomock.Any(), "b", 2).Return([]*schema.Proposal{
			proposalRow("c", domain.ProposalStatusPending, 0, 0),
		}, nil),
	)
	tm.store.EXPECT().
		UpdateProposalState(gomock.Any(), store.UpdateProposalStateInput{
			ID:             "c",
			Status:         domain.ProposalStatusActive,
			ExpectedStatus: domain.ProposalStatusPending,
		}).
		Return(&schema.Proposal{}, nil)
	tm.publisher.EXPECT().PublishGovernanceEvent(gomock.Any(), gomock.Any()).Return(errors.New("nats down"))
	tm.store.EXPECT().SetKeyValue(gomock.Any(), sweeper.LastCycleKey, gomock.Any()).Return(nil)

	result, err := tm.sweeper.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), result.Checked)
	assert.Equal(t, int32(1), result.Changed, "publish failures do not undo a persisted change")
}

func TestProposalStatusSweeper_ConcurrentChangeIsSkipped(t *testing.T) {
	now := votingStart.Add(time.Hour)
	tm := setupTestSweeper(t, now, 10)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().ListProposalsForSweep(gomock.Any(), "", 10).Return([]*schema.Proposal{
		proposalRow("a", domain.ProposalStatusPending, 0, 0),
	}, nil)
	tm.store.EXPECT().
		UpdateProposalState(gomock.Any(), gomock.Any()).
		Return(nil, errors.Join(domain.ErrState, errors.New("proposal a is canceled")))
	tm.store.EXPECT().SetKeyValue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := tm.sweeper.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sweeper.CycleResult{Checked: 1}, result)
}

func TestProposalStatusSweeper_UpdateFailure(t *testing.T) {
	now := votingStart.Add(time.Hour)
	tm := setupTestSweeper(t, now, 10)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().ListProposalsForSweep(gomock.Any(), "", 10).Return([]*schema.Proposal{
		proposalRow("a", domain.ProposalStatusPending, 0, 0),
	}, nil)
	tm.store.EXPECT().
		UpdateProposalState(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused")).
		MinTimes(1)
	tm.store.EXPECT().SetKeyValue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := tm.sweeper.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sweeper.CycleResult{Checked: 1, Failed: 1}, result)
}

func TestProposalStatusSweeper_ListFailure(t *testing.T) {
	tm := setupTestSweeper(t, votingStart, 10)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().ListProposalsForSweep(gomock.Any(), "", 10).Return(nil, errors.New("db down"))

	_, err := tm.sweeper.RunCycle(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestProposalStatusSweeper_StartStop(t *testing.T) {
	tm := setupTestSweeper(t, votingStart, 10)
	defer tm.ctrl.Finish()

	cycled := make(chan struct{}, 1)
	tm.store.EXPECT().ListProposalsForSweep(gomock.Any(), "", 10).Return(nil, nil).AnyTimes()
	tm.store.EXPECT().SetKeyValue(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string, string) error {
		select {
		case cycled <- struct{}{}:
		default:
		}
		return nil
	}).AnyTimes()
	tm.clock.EXPECT().After(time.Minute).Return(make(chan time.Time)).AnyTimes()

	done := make(chan error, 1)
	go func() {
		done <- tm.sweeper.Start(context.Background())
	}()

	select {
	case <-cycled:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not run a cycle")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tm.sweeper.Stop(ctx))
	require.NoError(t, <-done)

	assert.NoError(t, tm.sweeper.Stop(ctx), "stopping twice is a no-op")
}

func TestProposalStatusSweeper_ContextCancel(t *testing.T) {
	tm := setupTestSweeper(t, votingStart, 10)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().ListProposalsForSweep(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	tm.store.EXPECT().SetKeyValue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	tm.clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time)).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- tm.sweeper.Start(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop on context cancellation")
	}
}
