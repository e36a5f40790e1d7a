package governance

import (
	"fmt"
	"strings"
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
)

// Evaluator decides proposal states. It never reads the clock: every method takes now.
type Evaluator struct {
	// ExecutionDelay is the timelock between queueing and the earliest execution
	ExecutionDelay time.Duration
	// ExecutionWindow is how long a queued proposal stays executable after its eta
	ExecutionWindow time.Duration
	// Decimals is the token scale used by the weighted strategy tiers
	Decimals uint8
}

// NewEvaluator creates an evaluator with the given timelock settings
func NewEvaluator(executionDelay, executionWindow time.Duration, decimals uint8) *Evaluator {
	return &Evaluator{
		ExecutionDelay:  executionDelay,
		ExecutionWindow: executionWindow,
		Decimals:        decimals,
	}
}

// EvaluateProposalState derives the status of a proposal at now
func (e *Evaluator) EvaluateProposalState(p *Proposal, now time.Time) domain.ProposalStatus {
	switch {
	case p.Canceled:
		return domain.ProposalStatusCanceled
	case p.Executed:
		return domain.ProposalStatusExecuted
	case now.Before(p.StartTime):
		return domain.ProposalStatusPending
	case !now.After(p.EndTime):
		return domain.ProposalStatusActive
	case !QuorumReached(p) || !MajorityReached(p):
		return domain.ProposalStatusDefeated
	case p.QueuedEta == nil:
		return domain.ProposalStatusSucceeded
	case now.After(p.QueuedEta.Add(e.ExecutionWindow)):
		return domain.ProposalStatusExpired
	default:
		return domain.ProposalStatusQueued
	}
}

// QuorumReached reports whether (for + against + abstain) * 100 / supply, rounded down,
// reaches the proposal's quorum percentage
func QuorumReached(p *Proposal) bool {
	total, err := p.TotalVotes()
	if err != nil {
		return false
	}
	pct, err := total.PercentOf(p.SupplySnapshot)
	if err != nil {
		return false
	}
	return pct >= p.QuorumPercent
}

// MajorityReached reports whether for * 100 / (for + against), rounded down, reaches the
// required majority. A proposal with no for or against votes has no majority.
func MajorityReached(p *Proposal) bool {
	decisive, err := p.ForVotes.Add(p.AgainstVotes)
	if err != nil || decisive.IsZero() {
		return false
	}
	pct, err := p.ForVotes.PercentOf(decisive)
	if err != nil {
		return false
	}
	return pct >= p.RequiredMajorityPercent
}

// Queue schedules a succeeded proposal for execution at now + ExecutionDelay
func (e *Evaluator) Queue(p *Proposal, now time.Time) (*Proposal, error) {
	if status := e.EvaluateProposalState(p, now); status != domain.ProposalStatusSucceeded {
		return nil, fmt.Errorf("%w: cannot queue proposal %s in status %s", domain.ErrState, p.ID, status)
	}

	next := p.Clone()
	eta := now.Add(e.ExecutionDelay).UTC()
	next.QueuedEta = &eta
	return next, nil
}

// Execute marks a queued proposal as executed once its eta is reached
func (e *Evaluator) Execute(p *Proposal, now time.Time) (*Proposal, error) {
	if status := e.EvaluateProposalState(p, now); status != domain.ProposalStatusQueued {
		return nil, fmt.Errorf("%w: cannot execute proposal %s in status %s", domain.ErrState, p.ID, status)
	}
	if now.Before(*p.QueuedEta) {
		return nil, fmt.Errorf("%w: proposal %s is timelocked until %s", domain.ErrState, p.ID, p.QueuedEta.Format(time.RFC3339))
	}

	next := p.Clone()
	next.Executed = true
	return next, nil
}

// Cancel cancels a proposal that has not reached a terminal state. Only the proposer may cancel.
func (e *Evaluator) Cancel(p *Proposal, caller string, now time.Time) (*Proposal, error) {
	if !strings.EqualFold(caller, p.Proposer) {
		return nil, fmt.Errorf("%w: only the proposer can cancel proposal %s", domain.ErrState, p.ID)
	}
	if status := e.EvaluateProposalState(p, now); status.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot cancel proposal %s in status %s", domain.ErrState, p.ID, status)
	}

	next := p.Clone()
	next.Canceled = true
	return next, nil
}

// CastVote records a vote on an active proposal and returns the updated proposal and the vote.
// The voting power is computed once from balance and snapshotted in the vote; later balance
// changes never alter it. Each voter may vote once per proposal.
func (e *Evaluator) CastVote(p *Proposal, voter string, support domain.VoteSupport, balance amount.TokenAmount, strategy domain.VotingStrategy, now time.Time) (*Proposal, *Vote, error) {
	weight, err := ComputeVotingPower(balance, strategy, e.Decimals)
	if err != nil {
		return nil, nil, err
	}
	return e.CastWeightedVote(p, voter, support, weight, now)
}

// CastWeightedVote is CastVote with a voting power that was already resolved, for example
// through ResolveVotingPower when delegations apply
func (e *Evaluator) CastWeightedVote(p *Proposal, voter string, support domain.VoteSupport, weight amount.TokenAmount, now time.Time) (*Proposal, *Vote, error) {
	voter, err := domain.NormalizeAddress(voter)
	if err != nil {
		return nil, nil, err
	}
	if status := e.EvaluateProposalState(p, now); status != domain.ProposalStatusActive {
		return nil, nil, fmt.Errorf("%w: proposal %s is %s, not active", domain.ErrState, p.ID, status)
	}
	if p.HasVoted(voter) {
		return nil, nil, fmt.Errorf("%w: %s on proposal %s", domain.ErrAlreadyVoted, voter, p.ID)
	}

	next := p.Clone()
	switch support {
	case domain.VoteSupportFor:
		next.ForVotes, err = next.ForVotes.Add(weight)
	case domain.VoteSupportAgainst:
		next.AgainstVotes, err = next.AgainstVotes.Add(weight)
	case domain.VoteSupportAbstain:
		next.AbstainVotes, err = next.AbstainVotes.Add(weight)
	default:
		return nil, nil, fmt.Errorf("%w: unknown vote support %q", domain.ErrValidation, support)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add vote weight: %w", err)
	}

	vote := Vote{
		ProposalID: p.ID,
		Voter:      voter,
		Support:    support,
		Weight:     weight,
		Timestamp:  now.UTC(),
	}
	next.Receipts[strings.ToLower(voter)] = vote

	return next, &vote, nil
}
