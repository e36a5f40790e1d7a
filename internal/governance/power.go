package governance

import (
	"fmt"
	"strings"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
)

// weightTier multiplies balances of at least minWhole whole tokens by num/den
type weightTier struct {
	minWhole uint64
	num      uint64
	den      uint64
}

// weightTiers is ordered from the highest threshold down
var weightTiers = []weightTier{
	{minWhole: 1_000_000, num: 2, den: 1},
	{minWhole: 100_000, num: 15, den: 10},
	{minWhole: 10_000, num: 12, den: 10},
}

// ComputeVotingPower converts a balance into voting power.
//
//   - simple: the balance itself
//   - quadratic: the integer square root of the balance
//   - weighted: the balance times a tier multiplier picked from its whole-token value
//     (2 from 1,000,000, 1.5 from 100,000, 1.2 from 10,000), rounded down
func ComputeVotingPower(balance amount.TokenAmount, strategy domain.VotingStrategy, decimals uint8) (amount.TokenAmount, error) {
	switch strategy {
	case domain.VotingStrategySimple:
		return balance, nil
	case domain.VotingStrategyQuadratic:
		return balance.Sqrt(), nil
	case domain.VotingStrategyWeighted:
		whole := balance.WholeUnits(decimals)
		for _, tier := range weightTiers {
			if whole.Cmp(amount.FromUint64(tier.minWhole)) >= 0 {
				return balance.MulDiv(tier.num, tier.den)
			}
		}
		return balance, nil
	default:
		return amount.Zero(), fmt.Errorf("%w: unknown voting strategy %q", domain.ErrValidation, strategy)
	}
}

// ResolveVotingPower returns the voting power held by each address once delegations are applied.
// Every balance counts toward exactly one address: its delegatee when the owner delegated,
// the owner otherwise. Delegation is not transitive. The strategy is applied to each source
// balance before the powers are summed.
// Addresses are compared case-insensitively and returned in lowercase.
func ResolveVotingPower(balances map[string]amount.TokenAmount, delegations map[string]string, strategy domain.VotingStrategy, decimals uint8) (map[string]amount.TokenAmount, error) {
	delegatees := make(map[string]string, len(delegations))
	for owner, delegatee := range delegations {
		if delegatee == "" {
			continue
		}
		delegatees[strings.ToLower(owner)] = strings.ToLower(delegatee)
	}

	power := make(map[string]amount.TokenAmount, len(balances))
	for owner, balance := range balances {
		owner = strings.ToLower(owner)

		p, err := ComputeVotingPower(balance, strategy, decimals)
		if err != nil {
			return nil, err
		}

		holder := owner
		if delegatee, ok := delegatees[owner]; ok {
			holder = delegatee
		}

		if power[holder], err = power[holder].Add(p); err != nil {
			return nil, fmt.Errorf("failed to accumulate voting power for %s: %w", holder, err)
		}
	}

	return power, nil
}
