package distribution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

const (
	alice = "0x52908400098527886E0F7030069857D2E4169EE7"
	bob   = "0x8617E340B3D01FA5F11F306F4090FD50E238070D"
)

var grantStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func grant(t *testing.T, recipient, category string, amt uint64, cliffMonths, durationMonths uint64) vesting.VestingSchedule {
	t.Helper()
	g, err := vesting.NewVestingSchedule(vesting.GrantParams{
		Recipient:              recipient,
		Category:               category,
		Amount:                 amount.FromUint64(amt),
		Start:                  grantStart,
		CliffSeconds:           cliffMonths * domain.SecondsPerMonth,
		DurationSeconds:        durationMonths * domain.SecondsPerMonth,
		ReleaseIntervalSeconds: domain.SecondsPerMonth,
	})
	require.NoError(t, err)
	return *g
}

func TestComputeUpcomingReleases(t *testing.T) {
	revoked := grant(t, bob, "marketing", 9_000, 0, 3)
	r, _, err := revoked.Revoke(grantStart)
	require.NoError(t, err)

	schedules := []vesting.VestingSchedule{
		grant(t, alice, "team", 12_000, 0, 12),
		grant(t, bob, "team", 6_000, 0, 6),
		grant(t, alice, "advisors", 600, 3, 6),
		*r,
	}

	releases, err := ComputeUpcomingReleases(schedules, grantStart, 6)
	require.NoError(t, err)

	expected := []struct {
		month      string
		amount     string
		categories []string
		recipients int
	}{
		{month: "2025-01", amount: "2000", categories: []string{"team"}, recipients: 2},
		{month: "2025-03", amount: "2000", categories: []string{"team"}, recipients: 2},
		{month: "2025-04", amount: "2300", categories: []string{"advisors", "team"}, recipients: 2},
		{month: "2025-05", amount: "4200", categories: []string{"advisors", "team"}, recipients: 2},
		{month: "2025-06", amount: "2100", categories: []string{"advisors", "team"}, recipients: 2},
	}

	require.Len(t, releases, len(expected))
	for i, e := range expected {
		assert.Equal(t, e.month, releases[i].Month)
		assert.Equal(t, e.amount, releases[i].Amount.String(), e.month)
		assert.Equal(t, e.categories, releases[i].Categories, e.month)
		assert.Equal(t, e.recipients, releases[i].RecipientCount, e.month)
	}
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), releases[2].Start)
}

func TestComputeUpcomingReleases_Window(t *testing.T) {
	schedules := []vesting.VestingSchedule{grant(t, alice, "team", 12_000, 0, 12)}

	releases, err := ComputeUpcomingReleases(schedules, grantStart, 1)
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal(t, "2025-01", releases[0].Month)

	defaulted, err := ComputeUpcomingReleases(schedules, grantStart, 0)
	require.NoError(t, err)
	explicit, err := ComputeUpcomingReleases(schedules, grantStart, domain.DefaultUpcomingLookaheadMonths)
	require.NoError(t, err)
	assert.Equal(t, explicit, defaulted)

	_, err = ComputeUpcomingReleases(schedules, grantStart, -1)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ComputeUpcomingReleases(schedules, grantStart, MaxLookaheadMonths+1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestComputeUpcomingReleases_WindowEndIsExclusive(t *testing.T) {
	// 30-day releases land on Mar 2 and Apr 1, the window from Mar 1 ends at Apr 1
	schedules := []vesting.VestingSchedule{grant(t, alice, "team", 6_000, 0, 6)}
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	releases, err := ComputeUpcomingReleases(schedules, now, 1)
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal(t, "2025-03", releases[0].Month)
	assert.Equal(t, "1000", releases[0].Amount.String())

	// one nanosecond later the Apr 1 release is inside the window
	releases, err = ComputeUpcomingReleases(schedules, now.Add(time.Nanosecond), 1)
	require.NoError(t, err)
	require.Len(t, releases, 2)
	assert.Equal(t, "2025-04", releases[1].Month)
	assert.Equal(t, "1000", releases[1].Amount.String())
}

func TestComputeUpcomingReleases_AfterFullyVested(t *testing.T) {
	schedules := []vesting.VestingSchedule{grant(t, alice, "team", 12_000, 0, 12)}

	releases, err := ComputeUpcomingReleases(schedules, grantStart.AddDate(2, 0, 0), 6)
	require.NoError(t, err)
	assert.Empty(t, releases)
}

func TestComputeUpcomingAllocationReleases(t *testing.T) {
	releases, err := ComputeUpcomingAllocationReleases(testDistribution(), tge, 6)
	require.NoError(t, err)

	require.Len(t, releases, 6)
	months := []string{"2025-02", "2025-03", "2025-04", "2025-05", "2025-06", "2025-07"}
	for i, r := range releases {
		assert.Equal(t, months[i], r.Month)
		assert.Equal(t, "45000", r.Amount.String())
		assert.Equal(t, []string{"ecosystem"}, r.Categories)
		assert.Zero(t, r.RecipientCount)
	}
}

func TestComputeUpcomingAllocationReleases_WindowEndIsExclusive(t *testing.T) {
	d := Distribution{
		Name:        "Boundary",
		Symbol:      "BND",
		TotalSupply: amount.FromUint64(6_000),
		TGE:         grantStart,
		Allocations: []vesting.AllocationCategory{
			{
				Name:                  "team",
				PercentageOfSupplyBps: 10000,
				TotalAmount:           amount.FromUint64(6_000),
				VestingEnabled:        true,
				VestingSeconds:        6 * domain.SecondsPerMonth,
			},
		},
	}
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	releases, err := ComputeUpcomingAllocationReleases(d, now, 1)
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal(t, "2025-03", releases[0].Month)

	releases, err = ComputeUpcomingAllocationReleases(d, now.Add(time.Nanosecond), 1)
	require.NoError(t, err)
	require.Len(t, releases, 2)
	assert.Equal(t, "2025-04", releases[1].Month)
}
