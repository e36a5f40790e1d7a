package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   ProposalStatus
		expected bool
	}{
		{status: ProposalStatusPending, expected: false},
		{status: ProposalStatusActive, expected: false},
		{status: ProposalStatusSucceeded, expected: false},
		{status: ProposalStatusQueued, expected: false},
		{status: ProposalStatusCanceled, expected: true},
		{status: ProposalStatusDefeated, expected: true},
		{status: ProposalStatusExpired, expected: true},
		{status: ProposalStatusExecuted, expected: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.IsTerminal())
		})
	}

	for _, s := range NonTerminalProposalStatuses {
		assert.False(t, s.IsTerminal())
	}
}

func TestParseVotingStrategy(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  VotingStrategy
		expectErr bool
	}{
		{name: "simple", input: "simple", expected: VotingStrategySimple},
		{name: "quadratic uppercase", input: "QUADRATIC", expected: VotingStrategyQuadratic},
		{name: "weighted padded", input: " weighted ", expected: VotingStrategyWeighted},
		{name: "unknown", input: "conviction", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseVotingStrategy(tt.input)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestParseVoteSupport(t *testing.T) {
	s, err := ParseVoteSupport("For")
	require.NoError(t, err)
	assert.Equal(t, VoteSupportFor, s)

	s, err = ParseVoteSupport("abstain")
	require.NoError(t, err)
	assert.Equal(t, VoteSupportAbstain, s)

	_, err = ParseVoteSupport("maybe")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalizeAddress(t *testing.T) {
	addr, err := NormalizeAddress("0x52908400098527886e0f7030069857d2e4169ee7")
	require.NoError(t, err)
	assert.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", addr)

	_, err = NormalizeAddress("not-an-address")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NormalizeAddress(ETHEREUM_ZERO_ADDRESS)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestErrAlreadyVoted_IsStateError(t *testing.T) {
	assert.True(t, errors.Is(ErrAlreadyVoted, ErrState))
}
