package vesting

import (
	"fmt"
	"strings"
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
)

// MaxScheduleMonths bounds the number of monthly entries a single schedule can produce
const MaxScheduleMonths = 1200

// AllocationCategory describes how one slice of the supply unlocks
type AllocationCategory struct {
	Name                   string             `json:"name"`
	PercentageOfSupplyBps  uint64             `json:"percentage_of_supply_bps"`
	TotalAmount            amount.TokenAmount `json:"total_amount"`
	VestingEnabled         bool               `json:"vesting_enabled"`
	CliffSeconds           uint64             `json:"cliff_seconds"`
	VestingSeconds         uint64             `json:"vesting_seconds"`
	TGEUnlockPercent       uint64             `json:"tge_unlock_percent"`
	ReleaseIntervalSeconds uint64             `json:"release_interval_seconds"`
}

// CliffMonths returns the cliff in whole 30-day months, rounded down
func (a AllocationCategory) CliffMonths() uint64 {
	return a.CliffSeconds / domain.SecondsPerMonth
}

// VestingMonths returns the linear vesting period in whole 30-day months, rounded down
func (a AllocationCategory) VestingMonths() uint64 {
	return a.VestingSeconds / domain.SecondsPerMonth
}

// Validate checks the allocation parameters that do not depend on sibling categories
func (a AllocationCategory) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: allocation name is required", domain.ErrValidation)
	}
	if a.TGEUnlockPercent > 100 {
		return fmt.Errorf("%w: allocation %s: tge unlock %d%% exceeds 100%%", domain.ErrValidation, a.Name, a.TGEUnlockPercent)
	}
	if a.PercentageOfSupplyBps > domain.BasisPoints {
		return fmt.Errorf("%w: allocation %s: share %d bps exceeds %d", domain.ErrValidation, a.Name, a.PercentageOfSupplyBps, domain.BasisPoints)
	}
	if a.CliffMonths()+a.VestingMonths() > MaxScheduleMonths {
		return fmt.Errorf("%w: allocation %s: schedule exceeds %d months", domain.ErrValidation, a.Name, MaxScheduleMonths)
	}
	return nil
}

// MonthlyVestingEntry is one month of an allocation's release sequence. Month 0 is the TGE.
type MonthlyVestingEntry struct {
	MonthIndex         uint64             `json:"month_index"`
	Date               time.Time          `json:"date"`
	ReleasedThisPeriod amount.TokenAmount `json:"released_this_period"`
	CumulativeReleased amount.TokenAmount `json:"cumulative_released"`
	ReleasedBps        uint64             `json:"released_bps"`
	CumulativeBps      uint64             `json:"cumulative_bps"`
}

// Schedule is the computed release sequence for one allocation.
// Remainder is the truncation dust left over by the monthly division and Illiquid is the
// non-TGE amount that never unlocks because the vesting period is shorter than a month.
// Neither is ever released.
type Schedule struct {
	Category      string                `json:"category"`
	Amount        amount.TokenAmount    `json:"amount"`
	TGEAmount     amount.TokenAmount    `json:"tge_amount"`
	CliffMonths   uint64                `json:"cliff_months"`
	VestingMonths uint64                `json:"vesting_months"`
	MonthlyAmount amount.TokenAmount    `json:"monthly_amount"`
	Remainder     amount.TokenAmount    `json:"remainder"`
	Illiquid      amount.TokenAmount    `json:"illiquid"`
	Entries       []MonthlyVestingEntry `json:"entries"`
}

// FullyVestedMonth returns the last month that releases tokens
func (s *Schedule) FullyVestedMonth() uint64 {
	if s.VestingMonths == 0 {
		return 0
	}
	return s.CliffMonths + s.VestingMonths
}

// ReleasedAt returns the cumulative amount released by entries dated at or before t
func (s *Schedule) ReleasedAt(t time.Time) amount.TokenAmount {
	released := amount.Zero()
	for _, e := range s.Entries {
		if e.Date.After(t) {
			break
		}
		released = e.CumulativeReleased
	}
	return released
}

// VestingSchedule is an individual grant of tokens to a recipient
type VestingSchedule struct {
	ID                     string             `json:"id"`
	Recipient              string             `json:"recipient"`
	Category               string             `json:"category"`
	Amount                 amount.TokenAmount `json:"amount"`
	StartTimestamp         time.Time          `json:"start_timestamp"`
	CliffSeconds           uint64             `json:"cliff_seconds"`
	DurationSeconds        uint64             `json:"duration_seconds"`
	ReleaseIntervalSeconds uint64             `json:"release_interval_seconds"`
	Released               amount.TokenAmount `json:"released"`
	Revoked                bool               `json:"revoked"`
	RevokedAt              *time.Time         `json:"revoked_at,omitempty"`
}
