package webhook_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tokenomics/internal/adapter"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/messaging"
	"github.com/feral-file/ff-tokenomics/internal/mocks"
	"github.com/feral-file/ff-tokenomics/internal/webhook"
)

var deliveredAt = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestPublisher(t *testing.T, cfg webhook.Config, client adapter.HTTPClient) messaging.Publisher {
	t.Helper()

	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(deliveredAt).AnyTimes()

	if cfg.Secret == "" {
		cfg.Secret = "whsec"
	}
	cfg.InitialInterval = time.Millisecond

	pub, err := webhook.NewPublisher(cfg, client, clock)
	require.NoError(t, err)
	return pub
}

func statusEvent() *messaging.GovernanceEvent {
	return messaging.NewGovernanceEvent(domain.GovernanceEventProposalStatusChanged, "p1", deliveredAt, messaging.StatusChange{
		From: domain.ProposalStatusActive,
		To:   domain.ProposalStatusSucceeded,
	})
}

func TestNewPublisher_Validation(t *testing.T) {
	clock := adapter.NewClock()
	client := adapter.NewHTTPClient(time.Second)

	_, err := webhook.NewPublisher(webhook.Config{Secret: "s"}, client, clock)
	assert.Error(t, err)

	_, err = webhook.NewPublisher(webhook.Config{URLs: []string{"http://localhost"}}, client, clock)
	assert.Error(t, err)
}

func TestPublishGovernanceEvent_Delivers(t *testing.T) {
	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		ts, err := strconv.ParseInt(r.Header.Get("X-Webhook-Timestamp"), 10, 64)
		assert.NoError(t, err)
		assert.Equal(t, deliveredAt.Unix(), ts)
		assert.Equal(t, "proposal.status_changed", r.Header.Get("X-Webhook-Event-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		eventID := r.Header.Get("X-Webhook-Event-ID")
		assert.True(t, webhook.VerifySignature("whsec", ts, eventID, body, r.Header.Get("X-Webhook-Signature")))

		var event webhook.WebhookEvent
		assert.NoError(t, json.Unmarshal(body, &event))
		assert.Equal(t, eventID, event.EventID)
		assert.Equal(t, "p1", event.Data.ProposalID)
		assert.JSONEq(t, `{"from":"active","to":"succeeded"}`, string(event.Data.Payload))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	pub := newTestPublisher(t, webhook.Config{URLs: []string{server.URL, server.URL}}, adapter.NewHTTPClient(time.Second))

	require.NoError(t, pub.PublishGovernanceEvent(context.Background(), statusEvent()))
	assert.Equal(t, int32(2), received.Load())
}

func TestPublishGovernanceEvent_EventTypeFilter(t *testing.T) {
	tests := []struct {
		name       string
		eventTypes []string
		wantCalls  int32
	}{
		{name: "no filter", eventTypes: nil, wantCalls: 1},
		{name: "wildcard", eventTypes: []string{"vote.cast", webhook.EventTypeWildcard}, wantCalls: 1},
		{name: "matching", eventTypes: []string{"proposal.status_changed"}, wantCalls: 1},
		{name: "filtered out", eventTypes: []string{"vote.cast"}, wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				received.Add(1)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			pub := newTestPublisher(t, webhook.Config{URLs: []string{server.URL}, EventTypes: tt.eventTypes}, adapter.NewHTTPClient(time.Second))

			require.NoError(t, pub.PublishGovernanceEvent(context.Background(), statusEvent()))
			assert.Equal(t, tt.wantCalls, received.Load())
		})
	}
}

func TestPublishGovernanceEvent_Retries(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []int
		wantCalls int32
		wantErr   bool
	}{
		{name: "server error then success", statuses: []int{500, 502, 200}, wantCalls: 3},
		{name: "rate limited then success", statuses: []int{429, 200}, wantCalls: 2},
		{name: "client error is permanent", statuses: []int{400}, wantCalls: 1, wantErr: true},
		{name: "retries exhausted", statuses: []int{503, 503, 503, 503}, wantCalls: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				w.WriteHeader(tt.statuses[n-1])
			}))
			defer server.Close()

			pub := newTestPublisher(t, webhook.Config{URLs: []string{server.URL}, MaxRetries: 2}, adapter.NewHTTPClient(time.Second))

			err := pub.PublishGovernanceEvent(context.Background(), statusEvent())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestPublishGovernanceEvent_NetworkErrorDoesNotStopOtherURLs(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockHTTPClient(ctrl)

	client.EXPECT().
		PostWithHeadersNoRetry(gomock.Any(), "http://down.example", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(2)
	client.EXPECT().
		PostWithHeadersNoRetry(gomock.Any(), "http://up.example", gomock.Any(), gomock.Any()).
		Return(&http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(http.NoBody)}, nil)

	pub := newTestPublisher(t, webhook.Config{URLs: []string{"http://down.example", "http://up.example"}, MaxRetries: 1}, client)

	err := pub.PublishGovernanceEvent(context.Background(), statusEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http://down.example")
	assert.NotContains(t, err.Error(), "http://up.example")
}
