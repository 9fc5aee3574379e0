package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	apidomain "github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/events"
	"github.com/cuongbtq/jobboard/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAck captures how each delivery tag was settled
type recordingAck struct {
	mu      sync.Mutex
	settled map[uint64]domain.Settlement
}

func newRecordingAck() *recordingAck {
	return &recordingAck{settled: make(map[uint64]domain.Settlement)}
}

func (a *recordingAck) set(tag uint64, s domain.Settlement) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settled[tag] = s
	return nil
}

func (a *recordingAck) Ack(tag uint64, _ bool) error { return a.set(tag, domain.SettleAck) }

func (a *recordingAck) Nack(tag uint64, _ bool, requeue bool) error {
	if requeue {
		return a.set(tag, domain.SettleRequeue)
	}
	return a.set(tag, domain.SettleDrop)
}

func (a *recordingAck) Reject(tag uint64, requeue bool) error { return a.Nack(tag, false, requeue) }

func (a *recordingAck) outcome(tag uint64) (domain.Settlement, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.settled[tag]
	return s, ok
}

type fakeConsumer struct {
	deliveries chan amqp.Delivery
	err        error
}

func (c *fakeConsumer) Consume(string) (<-chan amqp.Delivery, error) {
	return c.deliveries, c.err
}

// fakeStore records event ids once and fails for job ids in failJobs
type fakeStore struct {
	mu       sync.Mutex
	seen     map[string]bool
	failJobs map[int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{seen: make(map[string]bool), failJobs: make(map[int64]bool)}
}

func (s *fakeStore) RecordEvent(_ context.Context, e events.ApplicationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failJobs[e.JobID] {
		return errors.New("connection reset by peer")
	}
	if s.seen[e.EventID] {
		return fmt.Errorf("event %s: %w", e.EventID, domain.ErrEventAlreadyProcessed)
	}
	s.seen[e.EventID] = true
	return nil
}

// blockingStore holds every event until ctx ends and reports ctx.Err()
type blockingStore struct {
	started chan struct{}
}

func (s *blockingStore) RecordEvent(ctx context.Context, _ events.ApplicationEvent) error {
	s.started <- struct{}{}
	<-ctx.Done()
	return ctx.Err()
}

func encodedEvent(t *testing.T, jobID int64) (events.ApplicationEvent, []byte) {
	t.Helper()
	app := &apidomain.Application{ID: 1, JobID: jobID, CandidateID: 1, Status: apidomain.StatusApplied}
	e := events.NewApplicationEvent(events.TypeApplicationCreated, app, time.Now())
	body, err := e.Encode()
	require.NoError(t, err)
	return e, body
}

func newTestWorker(consumer Consumer, store EventRecorder) *Worker {
	return NewWorker(&Config{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:        store,
		Consumer:     consumer,
		WorkerID:     "worker-test",
		Concurrency:  3,
		EventTimeout: time.Second,
	})
}

func TestWorker_SettlesEveryDelivery(t *testing.T) {
	ack := newRecordingAck()
	store := newFakeStore()
	store.failJobs[99] = true

	_, first := encodedEvent(t, 1)
	_, failing := encodedEvent(t, 99)

	deliveries := []amqp.Delivery{
		{DeliveryTag: 1, Body: first},
		{DeliveryTag: 2, Body: first}, // same event id again
		{DeliveryTag: 3, Body: []byte(`{"event_id": "nope"}`)},
		{DeliveryTag: 4, Body: failing},
		{DeliveryTag: 5, Body: failing, Redelivered: true},
	}

	ch := make(chan amqp.Delivery, len(deliveries))
	for _, d := range deliveries {
		d.Acknowledger = ack
		ch <- d
	}
	close(ch)

	w := newTestWorker(&fakeConsumer{deliveries: ch}, store)
	require.NoError(t, w.Start(context.Background()))

	want := map[uint64]domain.Settlement{
		1: domain.SettleAck,
		2: domain.SettleAck,
		3: domain.SettleDrop,
		4: domain.SettleRequeue,
		5: domain.SettleDrop,
	}
	for tag, settlement := range want {
		got, ok := ack.outcome(tag)
		require.True(t, ok, "delivery %d was never settled", tag)
		assert.Equal(t, settlement, got, "delivery %d", tag)
	}
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	ch := make(chan amqp.Delivery)
	w := newTestWorker(&fakeConsumer{deliveries: ch}, newFakeStore())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestWorker_CancelRequeuesInFlightEvent(t *testing.T) {
	ack := newRecordingAck()
	store := &blockingStore{started: make(chan struct{}, 1)}

	_, body := encodedEvent(t, 1)
	ch := make(chan amqp.Delivery, 1)
	ch <- amqp.Delivery{DeliveryTag: 7, Body: body, Redelivered: true, Acknowledger: ack}

	w := newTestWorker(&fakeConsumer{deliveries: ch}, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	select {
	case <-store.started:
	case <-time.After(2 * time.Second):
		t.Fatal("event never reached the store")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}

	got, ok := ack.outcome(7)
	require.True(t, ok)
	assert.Equal(t, domain.SettleRequeue, got)
}

func TestProcessEvent_Cancellation(t *testing.T) {
	e, _ := encodedEvent(t, 1)
	msg := &domain.EventMessage{Event: e, Delivery: amqp.Delivery{Redelivered: true}}

	t.Run("worker context canceled", func(t *testing.T) {
		w := newTestWorker(&fakeConsumer{}, ctxErrStore{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := w.processEvent(ctx, msg)
		assert.ErrorIs(t, err, domain.ErrInterrupted)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, domain.SettleRequeue, settlementFor(err, true))
	})

	t.Run("event timeout", func(t *testing.T) {
		w := NewWorker(&Config{
			Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
			Store:        ctxErrStore{wait: true},
			Consumer:     &fakeConsumer{},
			EventTimeout: 10 * time.Millisecond,
		})

		err := w.processEvent(context.Background(), msg)
		assert.NotErrorIs(t, err, domain.ErrInterrupted)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, domain.SettleDrop, settlementFor(err, true))
	})
}

// ctxErrStore returns ctx.Err(), optionally waiting for ctx to end first
type ctxErrStore struct {
	wait bool
}

func (s ctxErrStore) RecordEvent(ctx context.Context, _ events.ApplicationEvent) error {
	if s.wait {
		<-ctx.Done()
	}
	return ctx.Err()
}

func TestWorker_Stop(t *testing.T) {
	ch := make(chan amqp.Delivery)
	w := newTestWorker(&fakeConsumer{deliveries: ch}, newFakeStore())

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	w.Stop()
	w.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorker_ConsumeError(t *testing.T) {
	w := newTestWorker(&fakeConsumer{err: errors.New("not connected to RabbitMQ")}, newFakeStore())

	err := w.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}

func TestSettlementFor(t *testing.T) {
	transient := domain.NewRetryableError(errors.New("timeout"))
	duplicate := fmt.Errorf("event x: %w", domain.ErrEventAlreadyProcessed)
	interrupted := fmt.Errorf("%w: %w", domain.ErrInterrupted, context.Canceled)

	tests := []struct {
		name        string
		err         error
		redelivered bool
		want        domain.Settlement
	}{
		{name: "success", want: domain.SettleAck},
		{name: "duplicate", err: duplicate, want: domain.SettleAck},
		{name: "transient", err: transient, want: domain.SettleRequeue},
		{name: "transient again", err: transient, redelivered: true, want: domain.SettleDrop},
		{name: "interrupted", err: interrupted, want: domain.SettleRequeue},
		{name: "interrupted again", err: interrupted, redelivered: true, want: domain.SettleRequeue},
		{name: "invalid payload", err: domain.ErrInvalidPayload, want: domain.SettleDrop},
		{name: "unknown", err: errors.New("boom"), want: domain.SettleDrop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, settlementFor(tt.err, tt.redelivered))
		})
	}
}

func TestParseDelivery(t *testing.T) {
	e, body := encodedEvent(t, 5)

	msg, err := parseDelivery(amqp.Delivery{Body: body, DeliveryTag: 8})
	require.NoError(t, err)
	assert.Equal(t, e.EventID, msg.Event.EventID)
	assert.Equal(t, uint64(8), msg.Delivery.DeliveryTag)

	_, err = parseDelivery(amqp.Delivery{Body: []byte("not json")})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}
