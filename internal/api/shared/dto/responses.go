package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/distribution"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

// ProposalResponse represents a proposal evaluated at the time of the request
type ProposalResponse struct {
	ID                      string                `json:"id"`
	Proposer                string                `json:"proposer"`
	Title                   string                `json:"title"`
	Description             string                `json:"description"`
	ContentHash             string                `json:"content_hash"`
	Status                  domain.ProposalStatus `json:"status"`
	ForVotes                amount.TokenAmount    `json:"for_votes"`
	AgainstVotes            amount.TokenAmount    `json:"against_votes"`
	AbstainVotes            amount.TokenAmount    `json:"abstain_votes"`
	TotalVotes              amount.TokenAmount    `json:"total_votes"`
	QuorumPercent           uint64                `json:"quorum_percent"`
	RequiredMajorityPercent uint64                `json:"required_majority_percent"`
	QuorumReached           bool                  `json:"quorum_reached"`
	MajorityReached         bool                  `json:"majority_reached"`
	VotingStrategy          domain.VotingStrategy `json:"voting_strategy"`
	SupplySnapshot          amount.TokenAmount    `json:"supply_snapshot"`
	StartTime               time.Time             `json:"start_time"`
	EndTime                 time.Time             `json:"end_time"`
	QueuedEta               *time.Time            `json:"queued_eta,omitempty"`
	Executed                bool                  `json:"executed"`
	Canceled                bool                  `json:"canceled"`
	Metadata                json.RawMessage       `json:"metadata,omitempty"`
	CreatedAt               time.Time             `json:"created_at"`
	UpdatedAt               time.Time             `json:"updated_at"`
}

// ProposalListResponse represents a page of proposals
type ProposalListResponse struct {
	Proposals []ProposalResponse `json:"items"`
	Offset    *uint64            `json:"offset,omitempty"`
	Total     uint64             `json:"total"`
}

// VoteResponse represents a recorded vote
type VoteResponse struct {
	ProposalID string             `json:"proposal_id"`
	Voter      string             `json:"voter"`
	Support    domain.VoteSupport `json:"support"`
	Weight     amount.TokenAmount `json:"weight"`
	Balance    amount.TokenAmount `json:"balance"`
	CastAt     time.Time          `json:"cast_at"`
}

// VoteListResponse represents a page of votes
type VoteListResponse struct {
	Votes  []VoteResponse `json:"items"`
	Offset *uint64        `json:"offset,omitempty"`
	Total  uint64         `json:"total"`
}

// CastVoteResponse represents the outcome of casting a vote
type CastVoteResponse struct {
	Vote     VoteResponse     `json:"vote"`
	Proposal ProposalResponse `json:"proposal"`
}

// VotingPowerResponse represents the voting power of an address under a strategy.
// Power includes the balances delegated to the address and is zero when the address
// delegated its own balance away.
type VotingPowerResponse struct {
	Address          string                `json:"address"`
	Strategy         domain.VotingStrategy `json:"strategy"`
	Balance          amount.TokenAmount    `json:"balance"`
	DelegatedBalance amount.TokenAmount    `json:"delegated_balance"`
	Power            amount.TokenAmount    `json:"power"`
	Delegatee        string                `json:"delegatee,omitempty"`
	Delegators       []string              `json:"delegators,omitempty"`
}

// DelegationResponse represents the current delegation of an address
type DelegationResponse struct {
	Delegator string    `json:"delegator"`
	Delegatee string    `json:"delegatee"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GrantResponse represents a vesting grant evaluated at the time of the request
type GrantResponse struct {
	ID                     string               `json:"id"`
	Recipient              string               `json:"recipient"`
	Category               string               `json:"category"`
	Amount                 amount.TokenAmount   `json:"amount"`
	StartTimestamp         time.Time            `json:"start_timestamp"`
	CliffEnd               time.Time            `json:"cliff_end"`
	End                    time.Time            `json:"end"`
	CliffSeconds           uint64               `json:"cliff_seconds"`
	DurationSeconds        uint64               `json:"duration_seconds"`
	ReleaseIntervalSeconds uint64               `json:"release_interval_seconds"`
	Vested                 amount.TokenAmount   `json:"vested"`
	Released               amount.TokenAmount   `json:"released"`
	Releasable             amount.TokenAmount   `json:"releasable"`
	NextRelease            *NextReleaseResponse `json:"next_release,omitempty"`
	Revoked                bool                 `json:"revoked"`
	RevokedAt              *time.Time           `json:"revoked_at,omitempty"`
}

// NextReleaseResponse represents the next vesting tick of a grant
type NextReleaseResponse struct {
	At     time.Time          `json:"at"`
	Amount amount.TokenAmount `json:"amount"`
}

// GrantListResponse represents a page of vesting grants
type GrantListResponse struct {
	Grants []GrantResponse `json:"items"`
	Offset *uint64         `json:"offset,omitempty"`
	Total  uint64          `json:"total"`
}

// GrantReleaseResponse represents the outcome of releasing a grant
type GrantReleaseResponse struct {
	Grant    GrantResponse      `json:"grant"`
	Released amount.TokenAmount `json:"released"`
}

// GrantRevokeResponse represents the outcome of revoking a grant
type GrantRevokeResponse struct {
	Grant    GrantResponse      `json:"grant"`
	Unvested amount.TokenAmount `json:"unvested"`
}

// ScheduleResponse represents the monthly release schedule of an allocation
type ScheduleResponse struct {
	Category string            `json:"category"`
	TGE      time.Time         `json:"tge"`
	Schedule *vesting.Schedule `json:"schedule"`
}

// UpcomingReleasesResponse represents the releases of the coming months
type UpcomingReleasesResponse struct {
	Source   string                         `json:"source"`
	From     time.Time                      `json:"from"`
	Months   int                            `json:"months"`
	Releases []distribution.UpcomingRelease `json:"releases"`
	Total    amount.TokenAmount             `json:"total"`
}
