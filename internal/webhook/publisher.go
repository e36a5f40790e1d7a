package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-tokenomics/internal/adapter"
	"github.com/feral-file/ff-tokenomics/internal/logger"
	"github.com/feral-file/ff-tokenomics/internal/messaging"
)

const maxResponseBody = 4 * 1024

// Config holds the webhook endpoints and delivery settings
type Config struct {
	URLs   []string
	Secret string
	// EventTypes filters the delivered events, empty or "*" delivers everything
	EventTypes []string
	// MaxRetries bounds the attempts after the first failed delivery
	MaxRetries      uint64
	InitialInterval time.Duration
}

type publisher struct {
	config     Config
	httpClient adapter.HTTPClient
	clock      adapter.Clock
	eventTypes map[string]struct{}
}

// NewPublisher creates a publisher that POSTs signed governance events to every configured URL
func NewPublisher(cfg Config, httpClient adapter.HTTPClient, clock adapter.Clock) (messaging.Publisher, error) {
	if len(cfg.URLs) == 0 {
		return nil, errors.New("no webhook URLs configured")
	}
	if cfg.Secret == "" {
		return nil, errors.New("webhook secret is required")
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = time.Second
	}

	var eventTypes map[string]struct{}
	for _, t := range cfg.EventTypes {
		if t == EventTypeWildcard {
			eventTypes = nil
			break
		}
		if eventTypes == nil {
			eventTypes = make(map[string]struct{})
		}
		eventTypes[t] = struct{}{}
	}

	return &publisher{
		config:     cfg,
		httpClient: httpClient,
		clock:      clock,
		eventTypes: eventTypes,
	}, nil
}

// matches reports whether an event type passes the publisher's filter
func (p *publisher) matches(eventType string) bool {
	if p.eventTypes == nil {
		return true
	}
	_, ok := p.eventTypes[eventType]
	return ok
}

// PublishGovernanceEvent delivers the event to every URL. A failing URL does not stop the others
// and all delivery errors are returned together.
func (p *publisher) PublishGovernanceEvent(ctx context.Context, event *messaging.GovernanceEvent) error {
	if !p.matches(string(event.Type)) {
		return nil
	}

	var payload json.RawMessage
	if event.Data != nil {
		data, err := json.Marshal(event.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal event data: %w", err)
		}
		payload = data
	}

	webhookEvent := WebhookEvent{
		EventID:   event.EventID,
		EventType: string(event.Type),
		Timestamp: event.Timestamp,
		Data: EventData{
			ProposalID: event.ProposalID,
			Payload:    payload,
		},
	}

	var errs []error
	for _, url := range p.config.URLs {
		if _, err := p.deliverWithRetry(ctx, url, webhookEvent); err != nil {
			errs = append(errs, fmt.Errorf("webhook %s: %w", url, err))
		}
	}
	return errors.Join(errs...)
}

func (p *publisher) deliverWithRetry(ctx context.Context, url string, event WebhookEvent) (DeliveryResult, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.config.InitialInterval
	b.MaxInterval = 30 * time.Second

	var result DeliveryResult
	attempt := 0
	operation := func() error {
		attempt++
		var err error
		result, err = p.deliver(ctx, url, event)
		return err
	}

	notify := func(err error, d time.Duration) {
		logger.WarnCtx(ctx, "Webhook delivery failed, retrying",
			zap.String("url", url),
			zap.String("event_id", event.EventID),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", d),
			zap.Error(err),
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, p.config.MaxRetries), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return result, err
	}

	logger.DebugCtx(ctx, "Webhook delivered",
		zap.String("url", url),
		zap.String("event_id", event.EventID),
		zap.Int("status", result.StatusCode),
	)
	return result, nil
}

// deliver performs one signed POST. Network errors, 429 and 5xx responses are retryable,
// any other non-2xx response is permanent.
func (p *publisher) deliver(ctx context.Context, url string, event WebhookEvent) (DeliveryResult, error) {
	payload, signature, timestamp, err := GenerateSignedPayload(p.config.Secret, event, p.clock.Now())
	if err != nil {
		return DeliveryResult{}, backoff.Permanent(err)
	}

	headers := map[string]string{
		"Content-Type":         "application/json",
		"X-Webhook-Signature":  signature,
		"X-Webhook-Event-ID":   event.EventID,
		"X-Webhook-Event-Type": event.EventType,
		"X-Webhook-Timestamp":  fmt.Sprintf("%d", timestamp),
		"User-Agent":           "FF-Tokenomics-Webhook/1.0",
	}

	resp, err := p.httpClient.PostWithHeadersNoRetry(ctx, url, headers, bytes.NewReader(payload))
	if err != nil {
		return DeliveryResult{}, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WarnCtx(ctx, "failed to close response body", zap.Error(err), zap.String("url", url))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		// The status code is what matters
		body = []byte{}
	}

	result := DeliveryResult{StatusCode: resp.StatusCode, Body: string(body)}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		result.Success = true
		return result, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return result, fmt.Errorf("HTTP %d", resp.StatusCode)
	default:
		return result, backoff.Permanent(fmt.Errorf("HTTP %d", resp.StatusCode))
	}
}

// Close is a no-op, deliveries are synchronous
func (p *publisher) Close() {}
