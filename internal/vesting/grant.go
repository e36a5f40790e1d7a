package vesting

import (
	"fmt"
	"strings"
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
)

// MaxGrantSeconds bounds the duration of a single grant
const MaxGrantSeconds = MaxScheduleMonths * domain.SecondsPerMonth

// GrantParams holds the inputs for a new vesting grant
type GrantParams struct {
	ID                     string
	Recipient              string
	Category               string
	Amount                 amount.TokenAmount
	Start                  time.Time
	CliffSeconds           uint64
	DurationSeconds        uint64
	ReleaseIntervalSeconds uint64
}

// NewVestingSchedule validates the parameters and returns a grant with nothing released
func NewVestingSchedule(p GrantParams) (*VestingSchedule, error) {
	recipient, err := domain.NormalizeAddress(p.Recipient)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if p.Amount.IsZero() {
		return nil, fmt.Errorf("%w: grant amount must be positive", domain.ErrValidation)
	}
	if p.Start.IsZero() {
		return nil, fmt.Errorf("%w: start timestamp is required", domain.ErrValidation)
	}
	if p.DurationSeconds > MaxGrantSeconds {
		return nil, fmt.Errorf("%w: duration %ds exceeds %ds", domain.ErrValidation, p.DurationSeconds, MaxGrantSeconds)
	}
	if p.CliffSeconds > p.DurationSeconds {
		return nil, fmt.Errorf("%w: cliff %ds is longer than duration %ds", domain.ErrValidation, p.CliffSeconds, p.DurationSeconds)
	}

	interval := p.ReleaseIntervalSeconds
	if p.DurationSeconds > 0 {
		if interval == 0 {
			return nil, fmt.Errorf("%w: release interval must be positive", domain.ErrValidation)
		}
		if interval > p.DurationSeconds {
			return nil, fmt.Errorf("%w: release interval %ds is longer than duration %ds", domain.ErrValidation, interval, p.DurationSeconds)
		}
	}

	return &VestingSchedule{
		ID:                     p.ID,
		Recipient:              recipient,
		Category:               p.Category,
		Amount:                 p.Amount,
		StartTimestamp:         p.Start.UTC(),
		CliffSeconds:           p.CliffSeconds,
		DurationSeconds:        p.DurationSeconds,
		ReleaseIntervalSeconds: interval,
		Released:               amount.Zero(),
	}, nil
}

// CliffEnd returns the instant the cliff ends
func (g *VestingSchedule) CliffEnd() time.Time {
	return g.StartTimestamp.Add(time.Duration(g.CliffSeconds) * time.Second)
}

// End returns the instant the grant is fully vested
func (g *VestingSchedule) End() time.Time {
	return g.StartTimestamp.Add(time.Duration(g.DurationSeconds) * time.Second)
}

// VestedAmount returns the amount vested at now. Nothing vests before the cliff ends;
// afterwards vesting is linear over the duration, stepped to whole release intervals.
// Accrual stops at the revocation time.
func (g *VestingSchedule) VestedAmount(now time.Time) amount.TokenAmount {
	if g.Revoked && g.RevokedAt != nil && g.RevokedAt.Before(now) {
		now = *g.RevokedAt
	}

	if now.Before(g.StartTimestamp) || now.Before(g.CliffEnd()) {
		return amount.Zero()
	}
	if !now.Before(g.End()) {
		return g.Amount
	}

	interval := g.interval()
	elapsed := uint64(now.Sub(g.StartTimestamp) / time.Second)
	stepped := elapsed / interval * interval

	// stepped < duration here, so the result is below Amount
	vested, _ := g.Amount.MulDiv(stepped, g.DurationSeconds)
	return vested
}

// Releasable returns the vested amount that has not been released yet
func (g *VestingSchedule) Releasable(now time.Time) amount.TokenAmount {
	return g.VestedAmount(now).SaturatingSub(g.Released)
}

// Release returns a copy of the grant with every releasable token marked as released,
// together with the amount released
func (g *VestingSchedule) Release(now time.Time) (*VestingSchedule, amount.TokenAmount, error) {
	releasable := g.Releasable(now)
	if releasable.IsZero() {
		return nil, amount.Zero(), fmt.Errorf("%w: nothing to release for grant %s", domain.ErrState, g.ID)
	}

	released, err := g.Released.Add(releasable)
	if err != nil {
		return nil, amount.Zero(), err
	}
	if released.GreaterThan(g.Amount) {
		return nil, amount.Zero(), fmt.Errorf("%w: release would exceed grant amount", domain.ErrArithmetic)
	}

	next := *g
	next.Released = released
	return &next, releasable, nil
}

// Revoke returns a copy of the grant that stops accruing at now, together with the
// unvested amount returned to the issuer
func (g *VestingSchedule) Revoke(now time.Time) (*VestingSchedule, amount.TokenAmount, error) {
	if g.Revoked {
		return nil, amount.Zero(), fmt.Errorf("%w: grant %s is already revoked", domain.ErrState, g.ID)
	}

	vested := g.VestedAmount(now)
	unvested, err := g.Amount.Sub(vested)
	if err != nil {
		return nil, amount.Zero(), err
	}

	revokedAt := now.UTC()
	next := *g
	next.Revoked = true
	next.RevokedAt = &revokedAt
	return &next, unvested, nil
}

// NextRelease returns the next instant after now at which the vested amount increases,
// and by how much. It returns false when nothing more will vest.
func (g *VestingSchedule) NextRelease(now time.Time) (time.Time, amount.TokenAmount, bool) {
	if g.Revoked {
		return time.Time{}, amount.Zero(), false
	}

	vestedNow := g.VestedAmount(now)
	if !vestedNow.LessThan(g.Amount) {
		return time.Time{}, amount.Zero(), false
	}

	var next time.Time
	switch {
	case g.DurationSeconds == 0:
		next = g.StartTimestamp
	case now.Before(g.CliffEnd()):
		if g.CliffSeconds >= g.interval() {
			next = g.CliffEnd()
		} else {
			next = g.StartTimestamp.Add(time.Duration(g.interval()) * time.Second)
		}
	default:
		elapsed := uint64(now.Sub(g.StartTimestamp) / time.Second)
		step := elapsed/g.interval() + 1
		next = g.StartTimestamp.Add(time.Duration(step*g.interval()) * time.Second)
	}
	if next.After(g.End()) {
		next = g.End()
	}

	return next, g.VestedAmount(next).SaturatingSub(vestedNow), true
}

// VestedBetween returns the amount that vests in the half-open interval (from, to]
func (g *VestingSchedule) VestedBetween(from, to time.Time) amount.TokenAmount {
	if !to.After(from) {
		return amount.Zero()
	}
	return g.VestedAmount(to).SaturatingSub(g.VestedAmount(from))
}

func (g *VestingSchedule) interval() uint64 {
	return max(g.ReleaseIntervalSeconds, 1)
}
