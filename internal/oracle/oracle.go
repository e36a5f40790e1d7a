package oracle

import (
	"context"
	"strings"
	"sync"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

// BalanceOracle reads token balances from the source of truth
//
//go:generate mockgen -source=oracle.go -destination=../mocks/balance_oracle.go -package=mocks -mock_names=BalanceOracle=MockBalanceOracle
type BalanceOracle interface {
	// BalanceOf returns the current balance of address in base units
	BalanceOf(ctx context.Context, address string) (amount.TokenAmount, error)

	// TotalSupply returns the current total supply in base units
	TotalSupply(ctx context.Context) (amount.TokenAmount, error)
}

// StaticOracle serves balances from memory. Unknown addresses hold nothing.
type StaticOracle struct {
	mu       sync.RWMutex
	supply   amount.TokenAmount
	balances map[string]amount.TokenAmount
}

// NewStaticOracle creates a StaticOracle with the given supply and balances
func NewStaticOracle(supply amount.TokenAmount, balances map[string]amount.TokenAmount) *StaticOracle {
	o := &StaticOracle{
		supply:   supply,
		balances: make(map[string]amount.TokenAmount, len(balances)),
	}
	for addr, b := range balances {
		o.balances[strings.ToLower(addr)] = b
	}
	return o
}

// SetBalance replaces the balance of address
func (o *StaticOracle) SetBalance(address string, balance amount.TokenAmount) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.balances[strings.ToLower(address)] = balance
}

func (o *StaticOracle) BalanceOf(_ context.Context, address string) (amount.TokenAmount, error) {
	if _, err := domain.NormalizeAddress(address); err != nil {
		return amount.Zero(), err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.balances[strings.ToLower(address)], nil
}

func (o *StaticOracle) TotalSupply(_ context.Context) (amount.TokenAmount, error) {
	return o.supply, nil
}

// NewStaticOracleFromGrants creates a StaticOracle where every recipient holds the sum of
// its non-revoked grant amounts
func NewStaticOracleFromGrants(supply amount.TokenAmount, grants []vesting.VestingSchedule) (*StaticOracle, error) {
	balances := make(map[string]amount.TokenAmount)
	for _, g := range grants {
		if g.Revoked {
			continue
		}
		key := strings.ToLower(g.Recipient)
		total, err := balances[key].Add(g.Amount)
		if err != nil {
			return nil, err
		}
		balances[key] = total
	}
	return NewStaticOracle(supply, balances), nil
}
