package domain

const (
	// SecondsPerMonth is the 30-day month used by vesting schedules
	SecondsPerMonth = 2_592_000

	// BasisPoints is 100% expressed in basis points
	BasisPoints = 10_000

	// DefaultDecimals is the default token scale
	DefaultDecimals = 18

	// DefaultRequiredMajorityPercent is used when a proposal does not specify a majority
	DefaultRequiredMajorityPercent = 51

	// DefaultUpcomingLookaheadMonths is the default window for upcoming releases
	DefaultUpcomingLookaheadMonths = 6

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)
