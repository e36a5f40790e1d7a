package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/governance"
	"github.com/feral-file/ff-tokenomics/internal/store/schema"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

func TestSafeString(t *testing.T) {
	assert.Equal(t, "", SafeString(nil))
	assert.Equal(t, "test", SafeString(StringPtr("test")))
}

func TestTimePtr(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	ts := time.Date(2025, 1, 1, 7, 0, 0, 0, loc)

	p := TimePtr(ts)
	assert.Equal(t, time.UTC, p.Location())
	assert.True(t, ts.Equal(*p))
}

func TestProposalRoundTrip(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p, err := governance.NewProposal(governance.ProposalParams{
		Proposer:       "0x52908400098527886E0F7030069857D2E4169EE7",
		Title:          "Fund grants",
		QuorumPercent:  4,
		VotingStrategy: domain.VotingStrategyQuadratic,
		SupplySnapshot: amount.FromUint64(1_000_000),
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
	})
	require.NoError(t, err)

	input := ToCreateProposalInput(p, domain.ProposalStatusPending, nil)
	assert.Equal(t, p.ID, input.ID)
	assert.Equal(t, p.ContentHash, input.ContentHash)
	assert.Equal(t, domain.ProposalStatusPending, input.Status)

	eta := start.Add(3 * time.Hour)
	row := &schema.Proposal{
		ID:                      input.ID,
		Proposer:                input.Proposer,
		Title:                   input.Title,
		ContentHash:             input.ContentHash,
		ForVotes:                amount.FromUint64(9),
		QuorumPercent:           input.QuorumPercent,
		RequiredMajorityPercent: input.RequiredMajorityPercent,
		VotingStrategy:          input.VotingStrategy,
		SupplySnapshot:          input.SupplySnapshot,
		StartTime:               input.StartTime,
		EndTime:                 input.EndTime,
		QueuedEta:               &eta,
	}
	vote := schema.Vote{
		ProposalID: p.ID,
		Voter:      "0x8617E340B3D01FA5F11F306F4090FD50E238070D",
		Support:    domain.VoteSupportFor,
		Weight:     amount.FromUint64(9),
		CastAt:     start.Add(time.Minute),
	}

	back := ProposalFromSchema(row, vote)
	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, "9", back.ForVotes.String())
	assert.Equal(t, uint64(51), back.RequiredMajorityPercent)
	assert.True(t, back.HasVoted("0x8617e340b3d01fa5f11f306f4090fd50e238070d"))
	require.NotNil(t, back.QueuedEta)
	assert.NotSame(t, &eta, back.QueuedEta)

	update := ToUpdateProposalStateInput(back, domain.ProposalStatusQueued)
	assert.False(t, *update.Executed)
	assert.True(t, eta.Equal(*update.QueuedEta))
}

func TestVestingScheduleRoundTrip(t *testing.T) {
	s, err := vesting.NewVestingSchedule(vesting.GrantParams{
		ID:                     "6f1c1e8e-9f55-4a53-8a55-1e8d3c1b6a10",
		Recipient:              "0xde709f2102306220921060314715629080e2fb77",
		Category:               "team",
		Amount:                 amount.FromUint64(12_000),
		Start:                  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		CliffSeconds:           3 * domain.SecondsPerMonth,
		DurationSeconds:        12 * domain.SecondsPerMonth,
		ReleaseIntervalSeconds: domain.SecondsPerMonth,
	})
	require.NoError(t, err)

	input := ToCreateVestingGrantInput(s)
	revokedAt := s.StartTimestamp.AddDate(0, 6, 0)
	row := &schema.VestingGrant{
		ID:                     input.ID,
		Recipient:              input.Recipient,
		Category:               input.Category,
		Amount:                 input.Amount,
		StartTimestamp:         input.StartTimestamp,
		CliffSeconds:           input.CliffSeconds,
		DurationSeconds:        input.DurationSeconds,
		ReleaseIntervalSeconds: input.ReleaseIntervalSeconds,
		Released:               amount.FromUint64(3_000),
		Revoked:                true,
		RevokedAt:              &revokedAt,
	}

	back := VestingScheduleFromSchema(row)
	assert.Equal(t, s.ID, back.ID)
	assert.Equal(t, s.Amount, back.Amount)
	assert.Equal(t, "3000", back.Released.String())
	assert.True(t, back.Revoked)
	assert.True(t, revokedAt.Equal(*back.RevokedAt))
}
