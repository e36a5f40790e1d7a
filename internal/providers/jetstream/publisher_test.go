package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tokenomics/internal/adapter"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/messaging"
	"github.com/feral-file/ff-tokenomics/internal/mocks"
	"github.com/feral-file/ff-tokenomics/internal/providers/jetstream"
)

var testConfig = jetstream.Config{
	URL:            "nats://localhost:4222",
	StreamName:     "GOVERNANCE",
	MaxReconnects:  3,
	ReconnectWait:  time.Second,
	ConnectionName: "tokenomics-test",
}

func TestNewPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	conn := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)

	natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(conn, js, nil)
	js.
		EXPECT().
		CreateOrUpdateStream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg natsjs.StreamConfig) error {
			assert.Equal(t, "GOVERNANCE", cfg.Name)
			assert.Equal(t, []string{"governance.>"}, cfg.Subjects)
			return nil
		})

	pub, err := jetstream.NewPublisher(context.Background(), testConfig, natsJS, adapter.NewJSON())
	require.NoError(t, err)
	assert.NotNil(t, pub)
}

func TestNewPublisher_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("no servers available"))

	_, err := jetstream.NewPublisher(context.Background(), testConfig, natsJS, adapter.NewJSON())
	assert.ErrorContains(t, err, "no servers available")

	conn := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(conn, js, nil)
	js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).Return(errors.New("insufficient resources"))
	conn.EXPECT().Close()

	_, err = jetstream.NewPublisher(context.Background(), testConfig, natsJS, adapter.NewJSON())
	assert.ErrorContains(t, err, "failed to create stream GOVERNANCE")
}

func TestPublishGovernanceEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	conn := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(conn, js, nil)
	js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).Return(nil)

	pub, err := jetstream.NewPublisher(context.Background(), testConfig, natsJS, adapter.NewJSON())
	require.NoError(t, err)

	event := messaging.NewGovernanceEvent(domain.GovernanceEventVoteCast, "3f2a", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), map[string]string{
		"voter": "0x8617E340B3D01FA5F11F306F4090FD50E238070D",
	})

	js.
		EXPECT().
		Publish(gomock.Any(), "governance.vote.cast.3f2a", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, opts ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, event.EventID, decoded["event_id"])
			assert.Equal(t, "vote.cast", decoded["type"])
			assert.Len(t, opts, 1)
			return &natsjs.PubAck{Stream: "GOVERNANCE", Sequence: 1}, nil
		})

	require.NoError(t, pub.PublishGovernanceEvent(context.Background(), event))

	js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
	assert.ErrorContains(t, pub.PublishGovernanceEvent(context.Background(), event), "failed to publish event")

	conn.EXPECT().Drain().Return(nil)
	pub.Close()
}

func TestPublishGovernanceEvent_MarshalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	conn := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	jsonMock := mocks.NewMockJSON(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(conn, js, nil)
	js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).Return(nil)
	jsonMock.EXPECT().Marshal(gomock.Any()).Return(nil, errors.New("unsupported value"))

	pub, err := jetstream.NewPublisher(context.Background(), testConfig, natsJS, jsonMock)
	require.NoError(t, err)

	err = pub.PublishGovernanceEvent(context.Background(), messaging.NewGovernanceEvent(domain.GovernanceEventProposalCreated, "p", time.Now(), nil))
	assert.ErrorContains(t, err, "failed to marshal event")
}

func TestSubject(t *testing.T) {
	event := &messaging.GovernanceEvent{Type: domain.GovernanceEventProposalStatusChanged, ProposalID: "abc"}
	assert.Equal(t, "governance.proposal.status_changed.abc", jetstream.Subject(event))
}
