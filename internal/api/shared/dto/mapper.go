package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/governance"
	"github.com/feral-file/ff-tokenomics/internal/store/schema"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

// MapProposalToDTO maps a stored proposal to ProposalResponse. status and the reached
// flags come from the evaluation of p at the time of the request.
func MapProposalToDTO(row *schema.Proposal, p *governance.Proposal, status domain.ProposalStatus) *ProposalResponse {
	if row == nil || p == nil {
		return nil
	}

	total, err := p.TotalVotes()
	if err != nil {
		total = amount.Zero()
	}

	resp := &ProposalResponse{
		ID:                      p.ID,
		Proposer:                p.Proposer,
		Title:                   p.Title,
		Description:             p.Description,
		ContentHash:             p.ContentHash,
		Status:                  status,
		ForVotes:                p.ForVotes,
		AgainstVotes:            p.AgainstVotes,
		AbstainVotes:            p.AbstainVotes,
		TotalVotes:              total,
		QuorumPercent:           p.QuorumPercent,
		RequiredMajorityPercent: p.RequiredMajorityPercent,
		QuorumReached:           governance.QuorumReached(p),
		MajorityReached:         governance.MajorityReached(p),
		VotingStrategy:          p.VotingStrategy,
		SupplySnapshot:          p.SupplySnapshot,
		StartTime:               p.StartTime,
		EndTime:                 p.EndTime,
		QueuedEta:               p.QueuedEta,
		Executed:                p.Executed,
		Canceled:                p.Canceled,
		CreatedAt:               row.CreatedAt.UTC(),
		UpdatedAt:               row.UpdatedAt.UTC(),
	}
	if len(row.Metadata) > 0 {
		resp.Metadata = json.RawMessage(row.Metadata)
	}

	return resp
}

// MapVoteToDTO maps a stored vote to VoteResponse
func MapVoteToDTO(v *schema.Vote) *VoteResponse {
	if v == nil {
		return nil
	}

	return &VoteResponse{
		ProposalID: v.ProposalID,
		Voter:      v.Voter,
		Support:    v.Support,
		Weight:     v.Weight,
		Balance:    v.Balance,
		CastAt:     v.CastAt.UTC(),
	}
}

// MapGrantToDTO maps a vesting schedule to GrantResponse evaluated at now
func MapGrantToDTO(g *vesting.VestingSchedule, now time.Time) *GrantResponse {
	if g == nil {
		return nil
	}

	resp := &GrantResponse{
		ID:                     g.ID,
		Recipient:              g.Recipient,
		Category:               g.Category,
		Amount:                 g.Amount,
		StartTimestamp:         g.StartTimestamp,
		CliffEnd:               g.CliffEnd(),
		End:                    g.End(),
		CliffSeconds:           g.CliffSeconds,
		DurationSeconds:        g.DurationSeconds,
		ReleaseIntervalSeconds: g.ReleaseIntervalSeconds,
		Vested:                 g.VestedAmount(now),
		Released:               g.Released,
		Releasable:             g.Releasable(now),
		Revoked:                g.Revoked,
		RevokedAt:              g.RevokedAt,
	}

	if at, amt, ok := g.NextRelease(now); ok {
		resp.NextRelease = &NextReleaseResponse{At: at, Amount: amt}
	}

	return resp
}
