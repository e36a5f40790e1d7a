package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/feral-file/ff-tokenomics/internal/domain"
)

// GovernanceEvent is a notification about a proposal lifecycle change or a vote
type GovernanceEvent struct {
	EventID    string                     `json:"event_id"`
	Type       domain.GovernanceEventType `json:"type"`
	ProposalID string                     `json:"proposal_id"`
	Timestamp  time.Time                  `json:"timestamp"`
	Data       interface{}                `json:"data,omitempty"`
}

// NewGovernanceEvent creates an event with a ULID derived from at
func NewGovernanceEvent(eventType domain.GovernanceEventType, proposalID string, at time.Time, data interface{}) *GovernanceEvent {
	return &GovernanceEvent{
		EventID:    ulid.MustNewDefault(at).String(),
		Type:       eventType,
		ProposalID: proposalID,
		Timestamp:  at.UTC(),
		Data:       data,
	}
}

// StatusChange is the payload of a proposal.status_changed event
type StatusChange struct {
	From domain.ProposalStatus `json:"from"`
	To   domain.ProposalStatus `json:"to"`
}

// Publisher defines the interface for publishing governance events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishGovernanceEvent publishes a governance event
	PublishGovernanceEvent(ctx context.Context, event *GovernanceEvent) error
	// Close closes the connection
	Close()
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishGovernanceEvent(context.Context, *GovernanceEvent) error { return nil }

func (NopPublisher) Close() {}

type multiPublisher struct {
	publishers []Publisher
}

// NewMultiPublisher fans each event out to every publisher. All publishers are attempted
// and their errors are joined.
func NewMultiPublisher(publishers ...Publisher) Publisher {
	if len(publishers) == 1 {
		return publishers[0]
	}
	return &multiPublisher{publishers: publishers}
}

func (m *multiPublisher) PublishGovernanceEvent(ctx context.Context, event *GovernanceEvent) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.PublishGovernanceEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *multiPublisher) Close() {
	for _, p := range m.publishers {
		p.Close()
	}
}
