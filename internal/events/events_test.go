package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/shared/rabbitmq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	messages []rabbitmq.Message
	err      error
}

func (f *fakeClient) PublishWithRetry(_ context.Context, msg rabbitmq.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

func sampleApp() *domain.Application {
	return &domain.Application{ID: 3, JobID: 4, CandidateID: 5, Status: domain.StatusScreening}
}

func TestNewApplicationEvent(t *testing.T) {
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.FixedZone("X", 7200))
	e := NewApplicationEvent(TypeApplicationStatusChanged, sampleApp(), at)

	require.NoError(t, e.Validate())
	assert.Equal(t, int64(3), e.ApplicationID)
	assert.Equal(t, domain.StatusScreening, e.Status)
	assert.Equal(t, time.UTC, e.OccurredAt.Location())

	other := NewApplicationEvent(TypeApplicationStatusChanged, sampleApp(), at)
	assert.NotEqual(t, e.EventID, other.EventID)
}

func TestDecode(t *testing.T) {
	valid := NewApplicationEvent(TypeApplicationCreated, sampleApp(), time.Now())
	body, err := valid.Encode()
	require.NoError(t, err)

	tests := []struct {
		name    string
		body    []byte
		wantErr bool
	}{
		{name: "valid", body: body},
		{name: "malformed json", body: []byte("{"), wantErr: true},
		{name: "bad uuid", body: mustJSON(t, map[string]any{"event_id": "x", "type": "application.created", "application_id": 1, "job_id": 1, "candidate_id": 1}), wantErr: true},
		{name: "unknown type", body: mustJSON(t, map[string]any{"event_id": valid.EventID, "type": "job.created", "application_id": 1, "job_id": 1, "candidate_id": 1}), wantErr: true},
		{name: "missing ids", body: mustJSON(t, map[string]any{"event_id": valid.EventID, "type": "application.created"}), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.body)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidEvent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, valid.EventID, got.EventID)
			assert.True(t, valid.OccurredAt.Equal(got.OccurredAt))
		})
	}
}

func TestRabbitPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("publishes json", func(t *testing.T) {
		client := &fakeClient{}
		p := NewRabbitPublisher(client, logger)

		e := NewApplicationEvent(TypeApplicationInterviewScheduled, sampleApp(), time.Now())
		require.NoError(t, p.Publish(context.Background(), e))

		require.Len(t, client.messages, 1)
		msg := client.messages[0]
		assert.Equal(t, ContentType, msg.ContentType)
		assert.Equal(t, "application.interview_scheduled", msg.RoutingKey)
		assert.Equal(t, e.EventID, msg.MessageID)

		decoded, err := Decode(msg.Body)
		require.NoError(t, err)
		assert.Equal(t, TypeApplicationInterviewScheduled, decoded.Type)
	})

	t.Run("wraps client errors", func(t *testing.T) {
		boom := errors.New("channel closed")
		p := NewRabbitPublisher(&fakeClient{err: boom}, logger)

		err := p.Publish(context.Background(), NewApplicationEvent(TypeApplicationCreated, sampleApp(), time.Now()))
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nop", func(t *testing.T) {
		assert.NoError(t, NopPublisher{}.Publish(context.Background(), ApplicationEvent{}))
	})
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
