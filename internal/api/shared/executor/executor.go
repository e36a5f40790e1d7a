package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-tokenomics/internal/adapter"
	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/api/shared/constants"
	"github.com/feral-file/ff-tokenomics/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-tokenomics/internal/api/shared/errors"
	"github.com/feral-file/ff-tokenomics/internal/distribution"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/governance"
	"github.com/feral-file/ff-tokenomics/internal/logger"
	"github.com/feral-file/ff-tokenomics/internal/messaging"
	"github.com/feral-file/ff-tokenomics/internal/oracle"
	"github.com/feral-file/ff-tokenomics/internal/store"
	"github.com/feral-file/ff-tokenomics/internal/store/schema"
	internalTypes "github.com/feral-file/ff-tokenomics/internal/types"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetDistributionStats returns the supply snapshot of the configured distribution at the given time, or now
	GetDistributionStats(ctx context.Context, at *time.Time) (*distribution.TokenDistributionStats, error)

	// GetAllocationSchedule returns the monthly release schedule of an allocation
	GetAllocationSchedule(ctx context.Context, category string, months uint64) (*dto.ScheduleResponse, error)

	// GetUpcomingReleases returns the releases of the coming months, computed from the stored grants or from the allocations
	GetUpcomingReleases(ctx context.Context, months int, source string) (*dto.UpcomingReleasesResponse, error)

	// GetVotingPower returns the current voting power of an address once delegations are applied
	GetVotingPower(ctx context.Context, address string, strategy *domain.VotingStrategy) (*dto.VotingPowerResponse, error)

	// SetDelegation delegates the voting power of delegator, replacing any previous delegation
	SetDelegation(ctx context.Context, delegator string, req dto.SetDelegationRequest) (*dto.DelegationResponse, error)

	// ClearDelegation gives delegator its voting power back
	ClearDelegation(ctx context.Context, delegator string) error

	// CreateProposal creates a governance proposal with a snapshot of the current supply
	CreateProposal(ctx context.Context, req dto.CreateProposalRequest) (*dto.ProposalResponse, error)

	// GetProposal retrieves a proposal evaluated at the current time
	GetProposal(ctx context.Context, id string) (*dto.ProposalResponse, error)

	// ListProposals lists proposals with optional filters
	ListProposals(ctx context.Context, statuses []domain.ProposalStatus, proposer string, limit *int, offset *uint64, order store.SortOrder) (*dto.ProposalListResponse, error)

	// ListVotes lists the votes of a proposal
	ListVotes(ctx context.Context, proposalID string, limit *int, offset *uint64) (*dto.VoteListResponse, error)

	// CastVote records a vote weighted by the voter's current balance and the balances delegated to it
	CastVote(ctx context.Context, proposalID string, req dto.CastVoteRequest) (*dto.CastVoteResponse, error)

	// QueueProposal queues a succeeded proposal for execution
	QueueProposal(ctx context.Context, proposalID string) (*dto.ProposalResponse, error)

	// ExecuteProposal marks a queued proposal as executed
	ExecuteProposal(ctx context.Context, proposalID string) (*dto.ProposalResponse, error)

	// CancelProposal cancels a proposal on behalf of its proposer
	CancelProposal(ctx context.Context, proposalID string, req dto.CancelProposalRequest) (*dto.ProposalResponse, error)

	// CreateGrant creates a vesting grant
	CreateGrant(ctx context.Context, req dto.CreateGrantRequest) (*dto.GrantResponse, error)

	// GetGrant retrieves a vesting grant evaluated at the current time
	GetGrant(ctx context.Context, id string) (*dto.GrantResponse, error)

	// ListGrants lists vesting grants with optional filters
	ListGrants(ctx context.Context, recipient string, category string, includeRevoked bool, limit *int, offset *uint64) (*dto.GrantListResponse, error)

	// ReleaseGrant releases every vested token of a grant that has not been released yet
	ReleaseGrant(ctx context.Context, id string) (*dto.GrantReleaseResponse, error)

	// RevokeGrant stops a grant from vesting any further
	RevokeGrant(ctx context.Context, id string) (*dto.GrantRevokeResponse, error)
}

// Config holds the governance defaults applied by the executor
type Config struct {
	Decimals                uint8
	DefaultQuorumPercent    uint64
	DefaultRequiredMajority uint64
	DefaultVotingStrategy   domain.VotingStrategy
}

type executor struct {
	config    Config
	store     store.Store
	oracle    oracle.BalanceOracle
	evaluator *governance.Evaluator
	locker    *governance.Locker
	publisher messaging.Publisher
	clock     adapter.Clock
	document  *distribution.Document
}

// NewExecutor creates an executor. document may be nil when no distribution is configured.
func NewExecutor(
	config Config,
	store store.Store,
	oracle oracle.BalanceOracle,
	evaluator *governance.Evaluator,
	publisher messaging.Publisher,
	clock adapter.Clock,
	document *distribution.Document,
) Executor {
	if config.DefaultVotingStrategy == "" {
		config.DefaultVotingStrategy = domain.VotingStrategySimple
	}
	if config.DefaultRequiredMajority == 0 {
		config.DefaultRequiredMajority = domain.DefaultRequiredMajorityPercent
	}

	return &executor{
		config:    config,
		store:     store,
		oracle:    oracle,
		evaluator: evaluator,
		locker:    governance.NewLocker(),
		publisher: publisher,
		clock:     clock,
		document:  document,
	}
}

// =============================================================================
// Distribution
// =============================================================================

func (e *executor) GetDistributionStats(ctx context.Context, at *time.Time) (*distribution.TokenDistributionStats, error) {
	if e.document == nil {
		return nil, apierrors.NewNotFoundError("No distribution configured")
	}

	now := e.clock.Now()
	if at != nil {
		now = at.UTC()
	}

	stats, err := distribution.ComputeDistributionStats(e.document.Distribution, now)
	if err != nil {
		return nil, apierrors.FromError(err, "Failed to compute distribution stats")
	}

	return stats, nil
}

func (e *executor) GetAllocationSchedule(ctx context.Context, category string, months uint64) (*dto.ScheduleResponse, error) {
	if e.document == nil {
		return nil, apierrors.NewNotFoundError("No distribution configured")
	}

	alloc, ok := e.document.Distribution.Allocation(category)
	if !ok {
		return nil, apierrors.NewNotFoundError("Allocation not found", category)
	}

	schedule, err := vesting.ComputeMonthlySchedule(alloc, months, e.document.Distribution.TGE)
	if err != nil {
		return nil, apierrors.FromError(err, "Failed to compute schedule")
	}

	return &dto.ScheduleResponse{
		Category: alloc.Name,
		TGE:      e.document.Distribution.TGE,
		Schedule: schedule,
	}, nil
}

func (e *executor) GetUpcomingReleases(ctx context.Context, months int, source string) (*dto.UpcomingReleasesResponse, error) {
	now := e.clock.Now()
	if months == 0 {
		months = domain.DefaultUpcomingLookaheadMonths
	}

	var releases []distribution.UpcomingRelease
	switch source {
	case constants.UPCOMING_SOURCE_ALLOCATIONS:
		if e.document == nil {
			return nil, apierrors.NewNotFoundError("No distribution configured")
		}

		var err error
		releases, err = distribution.ComputeUpcomingAllocationReleases(e.document.Distribution, now, months)
		if err != nil {
			return nil, apierrors.FromError(err, "Failed to compute upcoming releases")
		}
	case constants.UPCOMING_SOURCE_GRANTS, "":
		source = constants.UPCOMING_SOURCE_GRANTS

		schedules, err := e.activeGrants(ctx)
		if err != nil {
			return nil, err
		}

		releases, err = distribution.ComputeUpcomingReleases(schedules, now, months)
		if err != nil {
			return nil, apierrors.FromError(err, "Failed to compute upcoming releases")
		}
	default:
		return nil, apierrors.NewValidationError(fmt.Sprintf("unknown source: %s", source))
	}

	total := amount.Zero()
	for _, r := range releases {
		var err error
		total, err = total.Add(r.Amount)
		if err != nil {
			return nil, apierrors.FromError(err, "Failed to sum upcoming releases")
		}
	}

	if releases == nil {
		releases = []distribution.UpcomingRelease{}
	}

	return &dto.UpcomingReleasesResponse{
		Source:   source,
		From:     now,
		Months:   months,
		Releases: releases,
		Total:    total,
	}, nil
}

// activeGrants loads every non-revoked grant, page by page
func (e *executor) activeGrants(ctx context.Context) ([]vesting.VestingSchedule, error) {
	var schedules []vesting.VestingSchedule
	var offset uint64
	for {
		grants, total, err := e.store.ListVestingGrants(ctx, store.VestingGrantQueryFilter{
			Limit:  constants.MAX_PAGE_SIZE,
			Offset: offset,
		})
		if err != nil {
			return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list grants: %v", err))
		}

		for _, g := range grants {
			schedules = append(schedules, internalTypes.VestingScheduleFromSchema(g))
		}

		offset += uint64(len(grants))
		if len(grants) == 0 || offset >= total {
			return schedules, nil
		}
	}
}

// =============================================================================
// Voting power
// =============================================================================

func (e *executor) GetVotingPower(ctx context.Context, address string, strategy *domain.VotingStrategy) (*dto.VotingPowerResponse, error) {
	addr, err := domain.NormalizeAddress(address)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid address: %s", address))
	}

	s := e.config.DefaultVotingStrategy
	if strategy != nil {
		s = *strategy
	}

	resolved, err := e.resolveVotingPower(ctx, addr, s)
	if err != nil {
		return nil, err
	}

	resp := &dto.VotingPowerResponse{
		Address:          addr,
		Strategy:         s,
		Balance:          resolved.balance,
		DelegatedBalance: resolved.delegatedBalance,
		Power:            resolved.power,
		Delegatee:        resolved.delegatee,
	}
	for _, d := range resolved.delegators {
		resp.Delegators = append(resp.Delegators, d.Delegator)
	}
	return resp, nil
}

// resolvedPower is the voting power of one address once delegations are applied
type resolvedPower struct {
	balance          amount.TokenAmount
	delegatedBalance amount.TokenAmount
	power            amount.TokenAmount
	delegatee        string
	delegators       []schema.Delegation
}

// resolveVotingPower reads the balances of addr and of every address that delegated to it
// and resolves them through governance.ResolveVotingPower
func (e *executor) resolveVotingPower(ctx context.Context, addr string, strategy domain.VotingStrategy) (*resolvedPower, error) {
	delegation, err := e.store.GetDelegation(ctx, addr)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get delegation: %v", err))
	}
	delegators, err := e.store.ListDelegators(ctx, addr)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list delegators: %v", err))
	}

	balance, err := e.oracle.BalanceOf(ctx, addr)
	if err != nil {
		return nil, apierrors.NewServiceError("Failed to read balance", err.Error())
	}

	resolved := &resolvedPower{balance: balance, delegators: delegators}
	balances := map[string]amount.TokenAmount{addr: balance}
	delegations := make(map[string]string, len(delegators)+1)
	if delegation != nil {
		resolved.delegatee = delegation.Delegatee
		delegations[addr] = delegation.Delegatee
	}

	for _, d := range delegators {
		b, err := e.oracle.BalanceOf(ctx, d.Delegator)
		if err != nil {
			return nil, apierrors.NewServiceError("Failed to read delegator balance", err.Error())
		}
		balances[d.Delegator] = b
		delegations[d.Delegator] = addr
		if resolved.delegatedBalance, err = resolved.delegatedBalance.Add(b); err != nil {
			return nil, apierrors.FromError(err, "Failed to sum delegated balances")
		}
	}

	power, err := governance.ResolveVotingPower(balances, delegations, strategy, e.config.Decimals)
	if err != nil {
		return nil, apierrors.FromError(err, "Failed to compute voting power")
	}
	resolved.power = power[strings.ToLower(addr)]

	return resolved, nil
}

func (e *executor) SetDelegation(ctx context.Context, delegator string, req dto.SetDelegationRequest) (*dto.DelegationResponse, error) {
	from, err := domain.NormalizeAddress(delegator)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid delegator: %s", delegator))
	}
	to, err := domain.NormalizeAddress(req.Delegatee)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid delegatee: %s", req.Delegatee))
	}
	if from == to {
		return nil, apierrors.NewValidationError("an address cannot delegate to itself")
	}

	row, err := e.store.SetDelegation(ctx, from, to)
	if err != nil {
		return nil, storeError(err, "Failed to set delegation")
	}

	logger.InfoCtx(ctx, "Voting power delegated",
		zap.String("delegator", from),
		zap.String("delegatee", to))

	return &dto.DelegationResponse{
		Delegator: row.Delegator,
		Delegatee: row.Delegatee,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (e *executor) ClearDelegation(ctx context.Context, delegator string) error {
	from, err := domain.NormalizeAddress(delegator)
	if err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid delegator: %s", delegator))
	}

	if err := e.store.DeleteDelegation(ctx, from); err != nil {
		return storeError(err, "Failed to clear delegation")
	}

	logger.InfoCtx(ctx, "Voting power delegation cleared", zap.String("delegator", from))
	return nil
}

// =============================================================================
// Proposals
// =============================================================================

func (e *executor) CreateProposal(ctx context.Context, req dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	quorum := e.config.DefaultQuorumPercent
	if req.QuorumPercent != nil {
		quorum = *req.QuorumPercent
	}
	majority := e.config.DefaultRequiredMajority
	if req.RequiredMajorityPercent != nil {
		majority = *req.RequiredMajorityPercent
	}
	strategy := e.config.DefaultVotingStrategy
	if req.VotingStrategy != "" {
		strategy = domain.VotingStrategy(req.VotingStrategy)
	}

	supply, err := e.oracle.TotalSupply(ctx)
	if err != nil {
		return nil, apierrors.NewServiceError("Failed to read total supply", err.Error())
	}

	proposal, err := governance.NewProposal(governance.ProposalParams{
		Proposer:                req.Proposer,
		Title:                   req.Title,
		Description:             req.Description,
		QuorumPercent:           quorum,
		RequiredMajorityPercent: majority,
		VotingStrategy:          strategy,
		SupplySnapshot:          supply,
		StartTime:               req.StartTime,
		EndTime:                 req.EndTime,
	})
	if err != nil {
		return nil, apierrors.FromError(err, "Failed to create proposal")
	}

	now := e.clock.Now()
	status := e.evaluator.EvaluateProposalState(proposal, now)

	var metadata datatypes.JSON
	if len(req.Metadata) > 0 {
		metadata = datatypes.JSON(req.Metadata)
	}

	row, err := e.store.CreateProposal(ctx, internalTypes.ToCreateProposalInput(proposal, status, metadata))
	if err != nil {
		return nil, storeError(err, "Failed to create proposal")
	}

	logger.InfoCtx(ctx, "Proposal created",
		zap.String("proposal_id", row.ID),
		zap.String("proposer", row.Proposer),
		zap.String("status", string(status)))

	e.publish(ctx, domain.GovernanceEventProposalCreated, row.ID, now, map[string]interface{}{
		"proposer":     row.Proposer,
		"title":        row.Title,
		"content_hash": row.ContentHash,
		"status":       status,
		"start_time":   row.StartTime.UTC(),
		"end_time":     row.EndTime.UTC(),
	})

	return e.proposalResponse(row, now), nil
}

func (e *executor) GetProposal(ctx context.Context, id string) (*dto.ProposalResponse, error) {
	row, err := e.store.GetProposal(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get proposal: %v", err))
	}

	if row == nil {
		return nil, nil
	}

	return e.proposalResponse(row, e.clock.Now()), nil
}

func (e *executor) ListProposals(ctx context.Context, statuses []domain.ProposalStatus, proposer string, limit *int, offset *uint64, order store.SortOrder) (*dto.ProposalListResponse, error) {
	// Use defaults if not provided
	if limit == nil {
		defaultLimit := constants.DEFAULT_PROPOSALS_LIMIT
		limit = &defaultLimit
	}
	if offset == nil {
		defaultOffset := constants.DEFAULT_OFFSET
		offset = &defaultOffset
	}

	rows, total, err := e.store.ListProposals(ctx, store.ProposalQueryFilter{
		Statuses: statuses,
		Proposer: proposer,
		Limit:    *limit,
		Offset:   *offset,
		Order:    order,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list proposals: %v", err))
	}

	now := e.clock.Now()
	proposals := make([]dto.ProposalResponse, len(rows))
	for i, row := range rows {
		proposals[i] = *e.proposalResponse(row, now)
	}

	return &dto.ProposalListResponse{
		Proposals: proposals,
		Offset:    nextOffset(*offset, len(rows), total),
		Total:     total,
	}, nil
}

func (e *executor) ListVotes(ctx context.Context, proposalID string, limit *int, offset *uint64) (*dto.VoteListResponse, error) {
	if limit == nil {
		defaultLimit := constants.DEFAULT_VOTES_LIMIT
		limit = &defaultLimit
	}
	if offset == nil {
		defaultOffset := constants.DEFAULT_OFFSET
		offset = &defaultOffset
	}

	row, err := e.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get proposal: %v", err))
	}
	if row == nil {
		return nil, apierrors.NewNotFoundError("Proposal not found")
	}

	votes, total, err := e.store.ListVotes(ctx, proposalID, *limit, *offset)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list votes: %v", err))
	}

	items := make([]dto.VoteResponse, len(votes))
	for i := range votes {
		items[i] = *dto.MapVoteToDTO(&votes[i])
	}

	return &dto.VoteListResponse{
		Votes:  items,
		Offset: nextOffset(*offset, len(votes), total),
		Total:  total,
	}, nil
}

func (e *executor) CastVote(ctx context.Context, proposalID string, req dto.CastVoteRequest) (*dto.CastVoteResponse, error) {
	voter, err := domain.NormalizeAddress(req.Voter)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid voter: %s", req.Voter))
	}
	support, err := domain.ParseVoteSupport(req.Support)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	var (
		now     time.Time
		updated *schema.Proposal
		vote    *schema.Vote
	)
	err = e.locker.Do(proposalID, func() error {
		row, err := e.loadProposal(ctx, proposalID)
		if err != nil {
			return err
		}

		var receipts []schema.Vote
		existing, err := e.store.GetVote(ctx, proposalID, voter)
		if err != nil {
			return apierrors.NewDatabaseError(fmt.Sprintf("Failed to get vote: %v", err))
		}
		if existing != nil {
			receipts = append(receipts, *existing)
		}

		resolved, err := e.resolveVotingPower(ctx, voter, row.VotingStrategy)
		if err != nil {
			return err
		}
		if resolved.delegatee != "" {
			return apierrors.FromError(
				fmt.Errorf("%w: voting power of %s is delegated to %s", domain.ErrState, voter, resolved.delegatee),
				"Failed to cast vote")
		}
		counted, err := resolved.balance.Add(resolved.delegatedBalance)
		if err != nil {
			return apierrors.FromError(err, "Failed to cast vote")
		}

		now = e.clock.Now()
		proposal := internalTypes.ProposalFromSchema(row, receipts...)
		_, cast, err := e.evaluator.CastWeightedVote(proposal, voter, support, resolved.power, now)
		if err != nil {
			return apierrors.FromError(err, "Failed to cast vote")
		}

		updated, vote, err = e.store.RecordVote(ctx, store.RecordVoteInput{
			ProposalID: proposalID,
			Voter:      voter,
			Support:    cast.Support,
			Weight:     cast.Weight,
			Balance:    counted,
			CastAt:     cast.Timestamp,
		})
		if err != nil {
			return storeError(err, "Failed to record vote")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Vote cast",
		zap.String("proposal_id", proposalID),
		zap.String("voter", voter),
		zap.String("support", string(support)),
		zap.String("weight", vote.Weight.String()))

	e.publish(ctx, domain.GovernanceEventVoteCast, proposalID, now, dto.MapVoteToDTO(vote))

	return &dto.CastVoteResponse{
		Vote:     *dto.MapVoteToDTO(vote),
		Proposal: *e.proposalResponse(updated, now),
	}, nil
}

func (e *executor) QueueProposal(ctx context.Context, proposalID string) (*dto.ProposalResponse, error) {
	return e.transition(ctx, proposalID, domain.GovernanceEventProposalQueued, "Failed to queue proposal",
		func(p *governance.Proposal, now time.Time) (*governance.Proposal, error) {
			return e.evaluator.Queue(p, now)
		})
}

func (e *executor) ExecuteProposal(ctx context.Context, proposalID string) (*dto.ProposalResponse, error) {
	return e.transition(ctx, proposalID, domain.GovernanceEventProposalExecuted, "Failed to execute proposal",
		func(p *governance.Proposal, now time.Time) (*governance.Proposal, error) {
			return e.evaluator.Execute(p, now)
		})
}

func (e *executor) CancelProposal(ctx context.Context, proposalID string, req dto.CancelProposalRequest) (*dto.ProposalResponse, error) {
	return e.transition(ctx, proposalID, domain.GovernanceEventProposalCanceled, "Failed to cancel proposal",
		func(p *governance.Proposal, now time.Time) (*governance.Proposal, error) {
			return e.evaluator.Cancel(p, req.Caller, now)
		})
}

// transition applies a lifecycle change to a proposal under its lock, persists it and
// publishes eventType
func (e *executor) transition(
	ctx context.Context,
	proposalID string,
	eventType domain.GovernanceEventType,
	message string,
	apply func(p *governance.Proposal, now time.Time) (*governance.Proposal, error),
) (*dto.ProposalResponse, error) {
	var (
		now     time.Time
		from    domain.ProposalStatus
		to      domain.ProposalStatus
		updated *schema.Proposal
	)
	err := e.locker.Do(proposalID, func() error {
		row, err := e.loadProposal(ctx, proposalID)
		if err != nil {
			return err
		}

		now = e.clock.Now()
		proposal := internalTypes.ProposalFromSchema(row)
		from = row.Status

		next, err := apply(proposal, now)
		if err != nil {
			return apierrors.FromError(err, message)
		}
		to = e.evaluator.EvaluateProposalState(next, now)

		input := internalTypes.ToUpdateProposalStateInput(next, to)
		input.ExpectedStatus = from
		updated, err = e.store.UpdateProposalState(ctx, input)
		if err != nil {
			return storeError(err, message)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Proposal status changed",
		zap.String("proposal_id", proposalID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	e.publish(ctx, eventType, proposalID, now, messaging.StatusChange{From: from, To: to})

	return e.proposalResponse(updated, now), nil
}

func (e *executor) loadProposal(ctx context.Context, id string) (*schema.Proposal, error) {
	row, err := e.store.GetProposal(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get proposal: %v", err))
	}
	if row == nil {
		return nil, apierrors.NewNotFoundError("Proposal not found")
	}
	return row, nil
}

func (e *executor) proposalResponse(row *schema.Proposal, now time.Time) *dto.ProposalResponse {
	proposal := internalTypes.ProposalFromSchema(row)
	return dto.MapProposalToDTO(row, proposal, e.evaluator.EvaluateProposalState(proposal, now))
}

func (e *executor) publish(ctx context.Context, eventType domain.GovernanceEventType, proposalID string, at time.Time, data interface{}) {
	event := messaging.NewGovernanceEvent(eventType, proposalID, at, data)
	if err := e.publisher.PublishGovernanceEvent(ctx, event); err != nil {
		// The change is already persisted
		logger.WarnCtx(ctx, "Failed to publish governance event",
			zap.String("type", string(eventType)),
			zap.String("proposal_id", proposalID),
			zap.Error(err))
	}
}

// =============================================================================
// Vesting grants
// =============================================================================

func (e *executor) CreateGrant(ctx context.Context, req dto.CreateGrantRequest) (*dto.GrantResponse, error) {
	if e.document != nil {
		if _, ok := e.document.Distribution.Allocation(req.Category); !ok {
			return nil, apierrors.NewValidationError(fmt.Sprintf("unknown category: %s", req.Category))
		}
	}

	grantAmount, err := amount.Parse(req.Amount)
	if err != nil {
		return nil, apierrors.FromError(err, "Failed to create grant")
	}

	schedule, err := vesting.NewVestingSchedule(vesting.GrantParams{
		ID:                     uuid.NewString(),
		Recipient:              req.Recipient,
		Category:               req.Category,
		Amount:                 grantAmount,
		Start:                  req.Start,
		CliffSeconds:           req.CliffSeconds,
		DurationSeconds:        req.DurationSeconds,
		ReleaseIntervalSeconds: req.ReleaseIntervalSeconds,
	})
	if err != nil {
		return nil, apierrors.FromError(err, "Failed to create grant")
	}

	row, err := e.store.CreateVestingGrant(ctx, internalTypes.ToCreateVestingGrantInput(schedule))
	if err != nil {
		return nil, storeError(err, "Failed to create grant")
	}

	logger.InfoCtx(ctx, "Vesting grant created",
		zap.String("grant_id", row.ID),
		zap.String("recipient", row.Recipient),
		zap.String("category", row.Category),
		zap.String("amount", row.Amount.String()))

	return e.grantResponse(row, e.clock.Now()), nil
}

func (e *executor) GetGrant(ctx context.Context, id string) (*dto.GrantResponse, error) {
	row, err := e.store.GetVestingGrant(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get grant: %v", err))
	}

	if row == nil {
		return nil, nil
	}

	return e.grantResponse(row, e.clock.Now()), nil
}

func (e *executor) ListGrants(ctx context.Context, recipient string, category string, includeRevoked bool, limit *int, offset *uint64) (*dto.GrantListResponse, error) {
	if limit == nil {
		defaultLimit := constants.DEFAULT_GRANTS_LIMIT
		limit = &defaultLimit
	}
	if offset == nil {
		defaultOffset := constants.DEFAULT_OFFSET
		offset = &defaultOffset
	}

	rows, total, err := e.store.ListVestingGrants(ctx, store.VestingGrantQueryFilter{
		Recipient:      recipient,
		Category:       category,
		IncludeRevoked: includeRevoked,
		Limit:          *limit,
		Offset:         *offset,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list grants: %v", err))
	}

	now := e.clock.Now()
	grants := make([]dto.GrantResponse, len(rows))
	for i, row := range rows {
		grants[i] = *e.grantResponse(row, now)
	}

	return &dto.GrantListResponse{
		Grants: grants,
		Offset: nextOffset(*offset, len(rows), total),
		Total:  total,
	}, nil
}

func (e *executor) ReleaseGrant(ctx context.Context, id string) (*dto.GrantReleaseResponse, error) {
	var resp *dto.GrantReleaseResponse
	err := e.locker.Do(grantLockKey(id), func() error {
		row, err := e.loadGrant(ctx, id)
		if err != nil {
			return err
		}

		now := e.clock.Now()
		schedule := internalTypes.VestingScheduleFromSchema(row)
		next, released, err := schedule.Release(now)
		if err != nil {
			return apierrors.FromError(err, "Failed to release grant")
		}

		updated, err := e.store.UpdateVestingGrant(ctx, store.UpdateVestingGrantInput{
			ID:               id,
			Released:         next.Released,
			Revoked:          next.Revoked,
			RevokedAt:        next.RevokedAt,
			ExpectedReleased: &row.Released,
			ExpectedRevoked:  &row.Revoked,
		})
		if err != nil {
			return storeError(err, "Failed to release grant")
		}

		logger.InfoCtx(ctx, "Vesting grant released",
			zap.String("grant_id", id),
			zap.String("released", released.String()))

		resp = &dto.GrantReleaseResponse{
			Grant:    *e.grantResponse(updated, now),
			Released: released,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (e *executor) RevokeGrant(ctx context.Context, id string) (*dto.GrantRevokeResponse, error) {
	var resp *dto.GrantRevokeResponse
	err := e.locker.Do(grantLockKey(id), func() error {
		row, err := e.loadGrant(ctx, id)
		if err != nil {
			return err
		}

		now := e.clock.Now()
		schedule := internalTypes.VestingScheduleFromSchema(row)
		next, unvested, err := schedule.Revoke(now)
		if err != nil {
			return apierrors.FromError(err, "Failed to revoke grant")
		}

		updated, err := e.store.UpdateVestingGrant(ctx, store.UpdateVestingGrantInput{
			ID:               id,
			Released:         next.Released,
			Revoked:          next.Revoked,
			RevokedAt:        next.RevokedAt,
			ExpectedReleased: &row.Released,
			ExpectedRevoked:  &row.Revoked,
		})
		if err != nil {
			return storeError(err, "Failed to revoke grant")
		}

		logger.InfoCtx(ctx, "Vesting grant revoked",
			zap.String("grant_id", id),
			zap.String("unvested", unvested.String()))

		resp = &dto.GrantRevokeResponse{
			Grant:    *e.grantResponse(updated, now),
			Unvested: unvested,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// grantLockKey keeps grant locks apart from proposal locks in the shared locker
func grantLockKey(id string) string {
	return "grant:" + id
}

func (e *executor) loadGrant(ctx context.Context, id string) (*schema.VestingGrant, error) {
	row, err := e.store.GetVestingGrant(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get grant: %v", err))
	}
	if row == nil {
		return nil, apierrors.NewNotFoundError("Grant not found")
	}
	return row, nil
}

func (e *executor) grantResponse(row *schema.VestingGrant, now time.Time) *dto.GrantResponse {
	schedule := internalTypes.VestingScheduleFromSchema(row)
	return dto.MapGrantToDTO(&schedule, now)
}

// storeError classifies a store failure. Domain errors raised by the store keep their
// meaning, anything else is reported as a database error.
func storeError(err error, message string) *apierrors.APIError {
	if errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrState) ||
		errors.Is(err, domain.ErrArithmetic) {
		return apierrors.FromError(err, message)
	}
	return apierrors.NewDatabaseError(fmt.Sprintf("%s: %v", message, err))
}

// nextOffset returns the offset of the next page, or nil on the last page
func nextOffset(offset uint64, count int, total uint64) *uint64 {
	next := offset + uint64(count)
	if count == 0 || next >= total {
		return nil
	}
	return &next
}
