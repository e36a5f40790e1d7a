package vesting

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/logger"
)

// ComputeMonthlySchedule turns an allocation into its monthly release sequence.
//
// Month 0 is the TGE and releases TGEUnlockPercent of the amount. The next CliffMonths
// months release nothing, then each of the following VestingMonths months releases
// floor((amount - tge) / VestingMonths). The sequence runs through the last vesting month
// or monthsAhead, whichever is later. Entry dates are tge + monthIndex * 30 days.
//
// An allocation with vesting disabled still releases its TGE share at month 0, the rest
// is reported as Illiquid and never released.
func ComputeMonthlySchedule(alloc AllocationCategory, monthsAhead uint64, tge time.Time) (*Schedule, error) {
	if err := alloc.Validate(); err != nil {
		return nil, err
	}
	if monthsAhead > MaxScheduleMonths {
		return nil, fmt.Errorf("%w: months ahead %d exceeds %d", domain.ErrValidation, monthsAhead, MaxScheduleMonths)
	}

	total := alloc.TotalAmount
	schedule := &Schedule{
		Category: alloc.Name,
		Amount:   total,
	}

	tgeAmount, err := total.MulPercent(alloc.TGEUnlockPercent * 100)
	if err != nil {
		return nil, fmt.Errorf("failed to compute tge amount for %s: %w", alloc.Name, err)
	}
	schedule.TGEAmount = tgeAmount
	if alloc.VestingEnabled {
		schedule.CliffMonths = alloc.CliffMonths()
		schedule.VestingMonths = alloc.VestingMonths()
	}

	vestable, err := total.Sub(schedule.TGEAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to compute vestable amount for %s: %w", alloc.Name, err)
	}

	switch {
	case vestable.IsZero():
	case schedule.VestingMonths == 0:
		schedule.Illiquid = vestable
		logger.Warn("allocation has no vesting months, non-tge amount stays locked",
			zap.String("category", alloc.Name),
			zap.String("illiquid", vestable.String()),
			zap.Bool("vestingEnabled", alloc.VestingEnabled),
			zap.Uint64("vestingSeconds", alloc.VestingSeconds))
	default:
		schedule.MonthlyAmount, err = vestable.DivFloor(schedule.VestingMonths)
		if err != nil {
			return nil, fmt.Errorf("failed to compute monthly amount for %s: %w", alloc.Name, err)
		}
		schedule.Remainder, err = vestable.Mod(schedule.VestingMonths)
		if err != nil {
			return nil, fmt.Errorf("failed to compute remainder for %s: %w", alloc.Name, err)
		}
		if !schedule.Remainder.IsZero() {
			logger.Debug("monthly vesting leaves a truncation remainder",
				zap.String("category", alloc.Name),
				zap.String("remainder", schedule.Remainder.String()))
		}
	}

	lastMonth := max(schedule.CliffMonths+schedule.VestingMonths, monthsAhead)
	schedule.Entries = make([]MonthlyVestingEntry, 0, lastMonth+1)

	cumulative := amount.Zero()
	for month := uint64(0); month <= lastMonth; month++ {
		released := schedule.releaseForMonth(month)

		cumulative, err = cumulative.Add(released)
		if err != nil {
			return nil, fmt.Errorf("failed to accumulate month %d for %s: %w", month, alloc.Name, err)
		}
		cumulative = amount.Min(cumulative, total)

		entry := MonthlyVestingEntry{
			MonthIndex:         month,
			Date:               MonthDate(tge, month),
			ReleasedThisPeriod: released,
			CumulativeReleased: cumulative,
		}
		if !total.IsZero() {
			// both values are bounded by total, so the ratio always fits
			entry.ReleasedBps, _ = released.BpsOf(total)
			entry.CumulativeBps, _ = cumulative.BpsOf(total)
		}
		schedule.Entries = append(schedule.Entries, entry)
	}

	return schedule, nil
}

func (s *Schedule) releaseForMonth(month uint64) amount.TokenAmount {
	switch {
	case month == 0:
		return s.TGEAmount
	case month <= s.CliffMonths:
		return amount.Zero()
	case month <= s.CliffMonths+s.VestingMonths:
		return s.MonthlyAmount
	default:
		return amount.Zero()
	}
}

// MonthDate returns the date of a schedule month measured from the TGE
func MonthDate(tge time.Time, month uint64) time.Time {
	return tge.Add(time.Duration(month) * domain.SecondsPerMonth * time.Second)
}

// ElapsedMonths returns the number of whole 30-day months between tge and now, or 0 before tge
func ElapsedMonths(tge, now time.Time) uint64 {
	if now.Before(tge) {
		return 0
	}
	return uint64(now.Sub(tge) / (domain.SecondsPerMonth * time.Second))
}
