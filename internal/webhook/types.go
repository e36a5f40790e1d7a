package webhook

import (
	"encoding/json"
	"time"
)

// EventTypeWildcard is a special filter that matches all event types
const EventTypeWildcard = "*"

// WebhookEvent represents a governance event delivered to a webhook endpoint
type WebhookEvent struct {
	// EventID is the ULID of the governance event, stable across retries
	EventID string `json:"event_id"`
	// EventType is the type of event (e.g., "vote.cast")
	EventType string `json:"event_type"`
	// Timestamp is when the event was generated
	Timestamp time.Time `json:"timestamp"`
	// Data contains the event-specific payload
	Data EventData `json:"data"`
}

// EventData contains the webhook event payload
type EventData struct {
	ProposalID string          `json:"proposal_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// DeliveryResult represents the result of a webhook delivery attempt
type DeliveryResult struct {
	// Success indicates whether the delivery was successful
	Success bool
	// StatusCode is the HTTP status code returned by the webhook endpoint
	StatusCode int
	// Body is the response body (limited to 4KB)
	Body string
}
