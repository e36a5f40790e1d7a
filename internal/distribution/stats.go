package distribution

import (
	"fmt"
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

// Validate checks that the allocation shares add up to the whole supply and that
// the allocated amounts fit in it
func (d *Distribution) Validate() error {
	if len(d.Allocations) == 0 {
		return fmt.Errorf("%w: distribution has no allocations", domain.ErrValidation)
	}

	seen := make(map[string]struct{}, len(d.Allocations))
	var bps uint64
	allocated := amount.Zero()
	for _, a := range d.Allocations {
		if err := a.Validate(); err != nil {
			return err
		}
		if _, ok := seen[a.Name]; ok {
			return fmt.Errorf("%w: duplicate allocation %s", domain.ErrValidation, a.Name)
		}
		seen[a.Name] = struct{}{}
		bps += a.PercentageOfSupplyBps

		var err error
		allocated, err = allocated.Add(a.TotalAmount)
		if err != nil {
			return fmt.Errorf("failed to sum allocations: %w", err)
		}
	}

	if bps != domain.BasisPoints {
		return fmt.Errorf("%w: allocation shares sum to %d bps, expected %d", domain.ErrValidation, bps, domain.BasisPoints)
	}
	if allocated.GreaterThan(d.TotalSupply) {
		return fmt.Errorf("%w: allocated %s exceeds total supply %s", domain.ErrValidation, allocated, d.TotalSupply)
	}
	return nil
}

// ComputeDistributionStats returns the supply snapshot of the distribution at now.
// Circulating supply counts every monthly release dated at or before now.
func ComputeDistributionStats(d Distribution, now time.Time) (*TokenDistributionStats, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.TotalSupply.IsZero() {
		return nil, fmt.Errorf("%w: total supply is zero", domain.ErrArithmetic)
	}

	stats := &TokenDistributionStats{
		At:             now,
		MonthsSinceTGE: vesting.ElapsedMonths(d.TGE, now),
		TotalSupply:    d.TotalSupply,
		Categories:     make([]CategoryStats, 0, len(d.Allocations)),
	}

	for _, alloc := range d.Allocations {
		schedule, err := vesting.ComputeMonthlySchedule(alloc, 0, d.TGE)
		if err != nil {
			return nil, fmt.Errorf("failed to compute schedule for %s: %w", alloc.Name, err)
		}

		cs := CategoryStats{
			Name:          alloc.Name,
			Allocated:     alloc.TotalAmount,
			TGEAmount:     schedule.TGEAmount,
			Released:      schedule.ReleasedAt(now),
			Illiquid:      schedule.Illiquid,
			Remainder:     schedule.Remainder,
			FullyVestedAt: vesting.MonthDate(d.TGE, schedule.FullyVestedMonth()),
		}
		cs.Locked = cs.Allocated.SaturatingSub(cs.Released)
		if !cs.Allocated.IsZero() {
			cs.ReleasedBps, _ = cs.Released.BpsOf(cs.Allocated)
		}
		stats.Categories = append(stats.Categories, cs)

		if stats.InitialCirculating, err = stats.InitialCirculating.Add(schedule.TGEAmount); err != nil {
			return nil, err
		}
		if stats.TotalAllocated, err = stats.TotalAllocated.Add(alloc.TotalAmount); err != nil {
			return nil, err
		}
		if stats.CurrentCirculating, err = stats.CurrentCirculating.Add(cs.Released); err != nil {
			return nil, err
		}
	}

	var err error
	if stats.LockedTokens, err = stats.TotalAllocated.Sub(stats.CurrentCirculating); err != nil {
		return nil, fmt.Errorf("failed to compute locked tokens: %w", err)
	}

	for _, p := range []struct {
		value amount.TokenAmount
		dst   *uint64
	}{
		{stats.InitialCirculating, &stats.InitialCirculatingBps},
		{stats.TotalAllocated, &stats.AllocatedBps},
		{stats.CurrentCirculating, &stats.CirculatingBps},
		{stats.LockedTokens, &stats.LockedBps},
	} {
		if *p.dst, err = p.value.BpsOf(d.TotalSupply); err != nil {
			return nil, fmt.Errorf("failed to compute share of supply: %w", err)
		}
	}

	return stats, nil
}
