package distribution

import (
	"time"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

// Distribution is the full allocation table of a token
type Distribution struct {
	Name        string                       `json:"name"`
	Symbol      string                       `json:"symbol"`
	TotalSupply amount.TokenAmount           `json:"total_supply"`
	Decimals    uint8                        `json:"decimals"`
	TGE         time.Time                    `json:"tge"`
	Allocations []vesting.AllocationCategory `json:"allocations"`
}

// Allocation returns the allocation with the given name
func (d *Distribution) Allocation(name string) (vesting.AllocationCategory, bool) {
	for _, a := range d.Allocations {
		if a.Name == name {
			return a, true
		}
	}
	return vesting.AllocationCategory{}, false
}

// CategoryStats is the circulation snapshot of one allocation
type CategoryStats struct {
	Name          string             `json:"name"`
	Allocated     amount.TokenAmount `json:"allocated"`
	TGEAmount     amount.TokenAmount `json:"tge_amount"`
	Released      amount.TokenAmount `json:"released"`
	Locked        amount.TokenAmount `json:"locked"`
	Illiquid      amount.TokenAmount `json:"illiquid"`
	Remainder     amount.TokenAmount `json:"remainder"`
	ReleasedBps   uint64             `json:"released_bps"`
	FullyVestedAt time.Time          `json:"fully_vested_at"`
}

// TokenDistributionStats is the supply snapshot of a distribution at a reference time
type TokenDistributionStats struct {
	At                    time.Time          `json:"at"`
	MonthsSinceTGE        uint64             `json:"months_since_tge"`
	TotalSupply           amount.TokenAmount `json:"total_supply"`
	InitialCirculating    amount.TokenAmount `json:"initial_circulating"`
	TotalAllocated        amount.TokenAmount `json:"total_allocated"`
	CurrentCirculating    amount.TokenAmount `json:"current_circulating"`
	LockedTokens          amount.TokenAmount `json:"locked_tokens"`
	InitialCirculatingBps uint64             `json:"initial_circulating_bps"`
	AllocatedBps          uint64             `json:"allocated_bps"`
	CirculatingBps        uint64             `json:"circulating_bps"`
	LockedBps             uint64             `json:"locked_bps"`
	Categories            []CategoryStats    `json:"categories"`
}

// UpcomingRelease is the amount unlocking in one calendar month
type UpcomingRelease struct {
	Month          string             `json:"month"`
	Start          time.Time          `json:"start"`
	Amount         amount.TokenAmount `json:"amount"`
	Categories     []string           `json:"categories"`
	RecipientCount int                `json:"recipient_count"`
}
