package types

import (
	"strings"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/governance"
	"github.com/feral-file/ff-tokenomics/internal/store"
	"github.com/feral-file/ff-tokenomics/internal/store/schema"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

// ProposalFromSchema converts a stored proposal into its governance form.
// receipts are the votes already cast that the caller wants the evaluator to see.
func ProposalFromSchema(p *schema.Proposal, receipts ...schema.Vote) *governance.Proposal {
	proposal := &governance.Proposal{
		ID:                      p.ID,
		Proposer:                p.Proposer,
		Title:                   p.Title,
		Description:             p.Description,
		ContentHash:             p.ContentHash,
		ForVotes:                p.ForVotes,
		AgainstVotes:            p.AgainstVotes,
		AbstainVotes:            p.AbstainVotes,
		QuorumPercent:           p.QuorumPercent,
		RequiredMajorityPercent: p.RequiredMajorityPercent,
		VotingStrategy:          p.VotingStrategy,
		SupplySnapshot:          p.SupplySnapshot,
		StartTime:               p.StartTime.UTC(),
		EndTime:                 p.EndTime.UTC(),
		Executed:                p.Executed,
		Canceled:                p.Canceled,
		Receipts:                make(map[string]governance.Vote, len(receipts)),
	}
	if p.QueuedEta != nil {
		proposal.QueuedEta = TimePtr(*p.QueuedEta)
	}

	for _, r := range receipts {
		proposal.Receipts[strings.ToLower(r.Voter)] = VoteFromSchema(r)
	}

	return proposal
}

// VoteFromSchema converts a stored vote into its governance form
func VoteFromSchema(v schema.Vote) governance.Vote {
	return governance.Vote{
		ProposalID: v.ProposalID,
		Voter:      v.Voter,
		Support:    v.Support,
		Weight:     v.Weight,
		Timestamp:  v.CastAt.UTC(),
	}
}

// ToCreateProposalInput converts a new governance proposal into a store input
func ToCreateProposalInput(p *governance.Proposal, status domain.ProposalStatus, metadata datatypes.JSON) store.CreateProposalInput {
	return store.CreateProposalInput{
		ID:                      p.ID,
		Proposer:                p.Proposer,
		Title:                   p.Title,
		Description:             p.Description,
		ContentHash:             p.ContentHash,
		QuorumPercent:           p.QuorumPercent,
		RequiredMajorityPercent: p.RequiredMajorityPercent,
		VotingStrategy:          p.VotingStrategy,
		SupplySnapshot:          p.SupplySnapshot,
		StartTime:               p.StartTime,
		EndTime:                 p.EndTime,
		Status:                  status,
		Metadata:                metadata,
	}
}

// ToUpdateProposalStateInput converts the lifecycle fields of a governance proposal into a store input
func ToUpdateProposalStateInput(p *governance.Proposal, status domain.ProposalStatus) store.UpdateProposalStateInput {
	input := store.UpdateProposalStateInput{
		ID:       p.ID,
		Status:   status,
		Executed: BoolPtr(p.Executed),
		Canceled: BoolPtr(p.Canceled),
	}
	if p.QueuedEta != nil {
		input.QueuedEta = TimePtr(*p.QueuedEta)
	}
	return input
}

// VestingScheduleFromSchema converts a stored grant into a vesting schedule
func VestingScheduleFromSchema(g *schema.VestingGrant) vesting.VestingSchedule {
	s := vesting.VestingSchedule{
		ID:                     g.ID,
		Recipient:              g.Recipient,
		Category:               g.Category,
		Amount:                 g.Amount,
		StartTimestamp:         g.StartTimestamp.UTC(),
		CliffSeconds:           g.CliffSeconds,
		DurationSeconds:        g.DurationSeconds,
		ReleaseIntervalSeconds: g.ReleaseIntervalSeconds,
		Released:               g.Released,
		Revoked:                g.Revoked,
	}
	if g.RevokedAt != nil {
		s.RevokedAt = TimePtr(*g.RevokedAt)
	}
	return s
}

// ToCreateVestingGrantInput converts a vesting schedule into a store input
func ToCreateVestingGrantInput(s *vesting.VestingSchedule) store.CreateVestingGrantInput {
	return store.CreateVestingGrantInput{
		ID:                     s.ID,
		Recipient:              s.Recipient,
		Category:               s.Category,
		Amount:                 s.Amount,
		StartTimestamp:         s.StartTimestamp,
		CliffSeconds:           s.CliffSeconds,
		DurationSeconds:        s.DurationSeconds,
		ReleaseIntervalSeconds: s.ReleaseIntervalSeconds,
	}
}
