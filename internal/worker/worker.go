package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cuongbtq/jobboard/internal/events"
	"github.com/cuongbtq/jobboard/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventRecorder persists an application event exactly once
type EventRecorder interface {
	RecordEvent(ctx context.Context, e events.ApplicationEvent) error
}

// Consumer hands out deliveries from the application events queue
type Consumer interface {
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
}

// Config holds worker configuration
type Config struct {
	Logger       *slog.Logger
	Store        EventRecorder
	Consumer     Consumer
	WorkerID     string
	Concurrency  int
	EventTimeout time.Duration
}

// Worker consumes application events and records them with a fixed pool of goroutines
type Worker struct {
	logger       *slog.Logger
	store        EventRecorder
	consumer     Consumer
	workerID     string
	concurrency  int
	eventTimeout time.Duration

	messages chan *domain.EventMessage
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopChan chan struct{}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	concurrency := max(cfg.Concurrency, 1)

	return &Worker{
		logger:       cfg.Logger,
		store:        cfg.Store,
		consumer:     cfg.Consumer,
		workerID:     cfg.WorkerID,
		concurrency:  concurrency,
		eventTimeout: cfg.EventTimeout,
		messages:     make(chan *domain.EventMessage, concurrency),
		stopChan:     make(chan struct{}),
	}
}

// Start consumes until ctx is canceled, Stop is called or the broker closes
// the delivery channel, then waits for in-flight events to settle
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("event_timeout", w.eventTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)
	w.startMessageDispatcher(ctx, deliveries)

	close(w.messages)
	w.wg.Wait()

	w.logger.Info("Worker stopped", slog.String("worker_id", w.workerID))
	return nil
}

// Stop asks the dispatcher to stop taking new deliveries
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker...")
		close(w.stopChan)
	})
}
