package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ProposalStatus represents the lifecycle state of a governance proposal
type ProposalStatus string

const (
	ProposalStatusPending   ProposalStatus = "pending"
	ProposalStatusActive    ProposalStatus = "active"
	ProposalStatusCanceled  ProposalStatus = "canceled"
	ProposalStatusDefeated  ProposalStatus = "defeated"
	ProposalStatusSucceeded ProposalStatus = "succeeded"
	ProposalStatusQueued    ProposalStatus = "queued"
	ProposalStatusExpired   ProposalStatus = "expired"
	ProposalStatusExecuted  ProposalStatus = "executed"
)

// IsTerminal reports whether no further transition is possible from the status
func (s ProposalStatus) IsTerminal() bool {
	switch s {
	case ProposalStatusCanceled, ProposalStatusDefeated, ProposalStatusExpired, ProposalStatusExecuted:
		return true
	default:
		return false
	}
}

// NonTerminalProposalStatuses lists every status a proposal can still leave
var NonTerminalProposalStatuses = []ProposalStatus{
	ProposalStatusPending,
	ProposalStatusActive,
	ProposalStatusSucceeded,
	ProposalStatusQueued,
}

// VoteSupport is the side a vote is cast on
type VoteSupport string

const (
	VoteSupportFor     VoteSupport = "for"
	VoteSupportAgainst VoteSupport = "against"
	VoteSupportAbstain VoteSupport = "abstain"
)

// ParseVoteSupport parses a vote side, case-insensitively
func ParseVoteSupport(s string) (VoteSupport, error) {
	switch VoteSupport(strings.ToLower(strings.TrimSpace(s))) {
	case VoteSupportFor:
		return VoteSupportFor, nil
	case VoteSupportAgainst:
		return VoteSupportAgainst, nil
	case VoteSupportAbstain:
		return VoteSupportAbstain, nil
	default:
		return "", fmt.Errorf("%w: unknown vote support %q", ErrValidation, s)
	}
}

// VotingStrategy identifies how a balance is converted into voting power
type VotingStrategy string

const (
	VotingStrategySimple    VotingStrategy = "simple"
	VotingStrategyQuadratic VotingStrategy = "quadratic"
	VotingStrategyWeighted  VotingStrategy = "weighted"
)

// ParseVotingStrategy parses a strategy identifier, case-insensitively
func ParseVotingStrategy(s string) (VotingStrategy, error) {
	switch VotingStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case VotingStrategySimple:
		return VotingStrategySimple, nil
	case VotingStrategyQuadratic:
		return VotingStrategyQuadratic, nil
	case VotingStrategyWeighted:
		return VotingStrategyWeighted, nil
	default:
		return "", fmt.Errorf("%w: unknown voting strategy %q", ErrValidation, s)
	}
}

// GovernanceEventType represents the type of governance event published to subscribers
type GovernanceEventType string

const (
	GovernanceEventProposalCreated       GovernanceEventType = "proposal.created"
	GovernanceEventVoteCast              GovernanceEventType = "vote.cast"
	GovernanceEventProposalStatusChanged GovernanceEventType = "proposal.status_changed"
	GovernanceEventProposalQueued        GovernanceEventType = "proposal.queued"
	GovernanceEventProposalExecuted      GovernanceEventType = "proposal.executed"
	GovernanceEventProposalCanceled      GovernanceEventType = "proposal.canceled"
)

// NormalizeAddress validates an Ethereum address and returns its checksummed form
func NormalizeAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: invalid address %q", ErrValidation, address)
	}
	normalized := common.HexToAddress(address).Hex()
	if normalized == ETHEREUM_ZERO_ADDRESS {
		return "", fmt.Errorf("%w: zero address", ErrValidation)
	}
	return normalized, nil
}
