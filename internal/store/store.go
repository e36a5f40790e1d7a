package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/store/schema"
)

// SortOrder represents the ordering of list queries
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// CreateProposalInput represents the data needed to persist a new proposal
type CreateProposalInput struct {
	ID                      string
	Proposer                string
	Title                   string
	Description             string
	ContentHash             string
	QuorumPercent           uint64
	RequiredMajorityPercent uint64
	VotingStrategy          domain.VotingStrategy
	SupplySnapshot          amount.TokenAmount
	StartTime               time.Time
	EndTime                 time.Time
	Status                  domain.ProposalStatus
	Metadata                datatypes.JSON
}

// ProposalQueryFilter represents filters for listing proposals
type ProposalQueryFilter struct {
	Statuses []domain.ProposalStatus
	Proposer string
	Limit    int
	Offset   uint64
	Order    SortOrder
}

// UpdateProposalStateInput represents a lifecycle change of a proposal.
// Nil fields are left untouched. When ExpectedStatus is set the update only applies
// if the stored status still equals it.
type UpdateProposalStateInput struct {
	ID             string
	Status         domain.ProposalStatus
	ExpectedStatus domain.ProposalStatus
	Executed       *bool
	Canceled       *bool
	QueuedEta      *time.Time
}

// RecordVoteInput represents a vote whose weight has already been computed
type RecordVoteInput struct {
	ProposalID string
	Voter      string
	Support    domain.VoteSupport
	Weight     amount.TokenAmount
	Balance    amount.TokenAmount
	CastAt     time.Time
}

// CreateVestingGrantInput represents the data needed to persist a vesting grant
type CreateVestingGrantInput struct {
	ID                     string
	Recipient              string
	Category               string
	Amount                 amount.TokenAmount
	StartTimestamp         time.Time
	CliffSeconds           uint64
	DurationSeconds        uint64
	ReleaseIntervalSeconds uint64
}

// VestingGrantQueryFilter represents filters for listing vesting grants
type VestingGrantQueryFilter struct {
	Recipient      string
	Category       string
	IncludeRevoked bool
	Limit          int
	Offset         uint64
}

// UpdateVestingGrantInput represents a release or a revocation of a grant.
// When ExpectedReleased or ExpectedRevoked is set the update only applies if the
// stored grant still matches it, otherwise domain.ErrState is returned.
type UpdateVestingGrantInput struct {
	ID               string
	Released         amount.TokenAmount
	Revoked          bool
	RevokedAt        *time.Time
	ExpectedReleased *amount.TokenAmount
	ExpectedRevoked  *bool
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// =============================================================================
	// Proposals
	// =============================================================================

	// CreateProposal inserts a new proposal with empty tallies
	CreateProposal(ctx context.Context, input CreateProposalInput) (*schema.Proposal, error)
	// GetProposal retrieves a proposal by ID, or nil when it does not exist
	GetProposal(ctx context.Context, id string) (*schema.Proposal, error)
	// ListProposals lists proposals matching the filter and the total count
	ListProposals(ctx context.Context, filter ProposalQueryFilter) ([]*schema.Proposal, uint64, error)
	// UpdateProposalState updates the status and lifecycle flags of a proposal
	UpdateProposalState(ctx context.Context, input UpdateProposalStateInput) (*schema.Proposal, error)
	// ListProposalsForSweep lists proposals in a non-terminal status with an ID greater than afterID
	ListProposalsForSweep(ctx context.Context, afterID string, limit int) ([]*schema.Proposal, error)

	// =============================================================================
	// Votes
	// =============================================================================

	// RecordVote inserts a vote and adds its weight to the proposal tally in one transaction.
	// It returns domain.ErrAlreadyVoted when the voter already voted on the proposal.
	RecordVote(ctx context.Context, input RecordVoteInput) (*schema.Proposal, *schema.Vote, error)
	// GetVote retrieves the vote of voter on a proposal, or nil when there is none
	GetVote(ctx context.Context, proposalID, voter string) (*schema.Vote, error)
	// ListVotes lists the votes of a proposal, oldest first, and the total count
	ListVotes(ctx context.Context, proposalID string, limit int, offset uint64) ([]schema.Vote, uint64, error)

	// =============================================================================
	// Vesting grants
	// =============================================================================

	// CreateVestingGrant inserts a vesting grant
	CreateVestingGrant(ctx context.Context, input CreateVestingGrantInput) (*schema.VestingGrant, error)
	// GetVestingGrant retrieves a grant by ID, or nil when it does not exist
	GetVestingGrant(ctx context.Context, id string) (*schema.VestingGrant, error)
	// ListVestingGrants lists grants matching the filter and the total count
	ListVestingGrants(ctx context.Context, filter VestingGrantQueryFilter) ([]*schema.VestingGrant, uint64, error)
	// UpdateVestingGrant updates the released amount and revocation of a grant
	UpdateVestingGrant(ctx context.Context, input UpdateVestingGrantInput) (*schema.VestingGrant, error)
	// CreateVestingGrants inserts the grants whose ID is not stored yet and returns how many were inserted
	CreateVestingGrants(ctx context.Context, inputs []CreateVestingGrantInput) (int, error)

	// =============================================================================
	// Delegations
	// =============================================================================

	// SetDelegation makes delegatee the holder of the voting power of delegator, replacing any previous delegation
	SetDelegation(ctx context.Context, delegator, delegatee string) (*schema.Delegation, error)
	// DeleteDelegation removes the delegation of delegator.
	// It returns domain.ErrNotFound when delegator has not delegated.
	DeleteDelegation(ctx context.Context, delegator string) error
	// GetDelegation retrieves the delegation of delegator, or nil when there is none
	GetDelegation(ctx context.Context, delegator string) (*schema.Delegation, error)
	// ListDelegators lists the delegations made to delegatee
	ListDelegators(ctx context.Context, delegatee string) ([]schema.Delegation, error)

	// =============================================================================
	// Key-value state
	// =============================================================================

	// SetKeyValue stores a value under key
	SetKeyValue(ctx context.Context, key string, value string) error
	// GetKeyValue retrieves the value under key, or "" when unset
	GetKeyValue(ctx context.Context, key string) (string, error)
}
