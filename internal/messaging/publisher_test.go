package messaging

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tokenomics/internal/domain"
)

func TestNewGovernanceEvent(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	event := NewGovernanceEvent(domain.GovernanceEventProposalStatusChanged, "p1", at, StatusChange{
		From: domain.ProposalStatusActive,
		To:   domain.ProposalStatusSucceeded,
	})

	id, err := ulid.ParseStrict(event.EventID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(at), id.Time())
	assert.Equal(t, time.UTC, event.Timestamp.Location())
	assert.Equal(t, "p1", event.ProposalID)

	other := NewGovernanceEvent(domain.GovernanceEventVoteCast, "p1", at, nil)
	assert.NotEqual(t, event.EventID, other.EventID)
}
