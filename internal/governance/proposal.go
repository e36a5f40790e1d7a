package governance

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/gowebpki/jcs"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
)

// Proposal is a governance proposal with its running tallies
type Proposal struct {
	ID                      string                `json:"id"`
	Proposer                string                `json:"proposer"`
	Title                   string                `json:"title"`
	Description             string                `json:"description"`
	ContentHash             string                `json:"content_hash"`
	ForVotes                amount.TokenAmount    `json:"for_votes"`
	AgainstVotes            amount.TokenAmount    `json:"against_votes"`
	AbstainVotes            amount.TokenAmount    `json:"abstain_votes"`
	QuorumPercent           uint64                `json:"quorum_percent"`
	RequiredMajorityPercent uint64                `json:"required_majority_percent"`
	VotingStrategy          domain.VotingStrategy `json:"voting_strategy"`
	SupplySnapshot          amount.TokenAmount    `json:"supply_snapshot"`
	StartTime               time.Time             `json:"start_time"`
	EndTime                 time.Time             `json:"end_time"`
	Executed                bool                  `json:"executed"`
	Canceled                bool                  `json:"canceled"`
	QueuedEta               *time.Time            `json:"queued_eta,omitempty"`
	Receipts                map[string]Vote       `json:"-"`
}

// Vote is a single voter's snapshotted choice on a proposal
type Vote struct {
	ProposalID string             `json:"proposal_id"`
	Voter      string             `json:"voter"`
	Support    domain.VoteSupport `json:"support"`
	Weight     amount.TokenAmount `json:"weight"`
	Timestamp  time.Time          `json:"timestamp"`
}

// ProposalParams holds the inputs for a new proposal
type ProposalParams struct {
	Proposer                string
	Title                   string
	Description             string
	QuorumPercent           uint64
	RequiredMajorityPercent uint64
	VotingStrategy          domain.VotingStrategy
	SupplySnapshot          amount.TokenAmount
	StartTime               time.Time
	EndTime                 time.Time
}

// NewProposal validates the parameters and returns a pending proposal with empty tallies
func NewProposal(p ProposalParams) (*Proposal, error) {
	proposer, err := domain.NormalizeAddress(p.Proposer)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !p.EndTime.After(p.StartTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", domain.ErrValidation)
	}
	if p.QuorumPercent > 100 {
		return nil, fmt.Errorf("%w: quorum %d%% exceeds 100%%", domain.ErrValidation, p.QuorumPercent)
	}

	majority := p.RequiredMajorityPercent
	if majority == 0 {
		majority = domain.DefaultRequiredMajorityPercent
	}
	if majority > 100 {
		return nil, fmt.Errorf("%w: required majority %d%% exceeds 100%%", domain.ErrValidation, majority)
	}

	strategy, err := domain.ParseVotingStrategy(string(p.VotingStrategy))
	if err != nil {
		return nil, err
	}
	if p.SupplySnapshot.IsZero() {
		return nil, fmt.Errorf("%w: supply snapshot must be positive", domain.ErrValidation)
	}

	proposal := &Proposal{
		ID:                      uuid.NewString(),
		Proposer:                proposer,
		Title:                   strings.TrimSpace(p.Title),
		Description:             p.Description,
		QuorumPercent:           p.QuorumPercent,
		RequiredMajorityPercent: majority,
		VotingStrategy:          strategy,
		SupplySnapshot:          p.SupplySnapshot,
		StartTime:               p.StartTime.UTC(),
		EndTime:                 p.EndTime.UTC(),
		Receipts:                map[string]Vote{},
	}

	proposal.ContentHash, err = ContentHash(proposal)
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// Clone returns a deep copy of the proposal
func (p *Proposal) Clone() *Proposal {
	c := *p
	if p.QueuedEta != nil {
		eta := *p.QueuedEta
		c.QueuedEta = &eta
	}
	c.Receipts = make(map[string]Vote, len(p.Receipts))
	for k, v := range p.Receipts {
		c.Receipts[k] = v
	}
	return &c
}

// HasVoted reports whether voter already has a recorded vote
func (p *Proposal) HasVoted(voter string) bool {
	_, ok := p.Receipts[strings.ToLower(voter)]
	return ok
}

// TotalVotes returns for + against + abstain
func (p *Proposal) TotalVotes() (amount.TokenAmount, error) {
	return amount.Sum(p.ForVotes, p.AgainstVotes, p.AbstainVotes)
}

// ContentHash returns the keccak256 hash of the RFC 8785 canonical JSON form of the
// proposal's immutable content
func ContentHash(p *Proposal) (string, error) {
	content := map[string]any{
		"proposer":                  p.Proposer,
		"title":                     p.Title,
		"description":               p.Description,
		"quorum_percent":            p.QuorumPercent,
		"required_majority_percent": p.RequiredMajorityPercent,
		"voting_strategy":           p.VotingStrategy,
		"supply_snapshot":           p.SupplySnapshot.String(),
		"start_time":                p.StartTime.Unix(),
		"end_time":                  p.EndTime.Unix(),
	}

	data, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("failed to marshal proposal content: %w", err)
	}

	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize proposal content: %w", err)
	}

	return crypto.Keccak256Hash(canonical).Hex(), nil
}
