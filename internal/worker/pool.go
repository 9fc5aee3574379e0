package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobboard/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}
}

// workerLoop processes messages until the dispatcher closes the channel.
// Messages already handed over are always settled, even after ctx is canceled.
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Debug("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for msg := range w.messages {
		err := w.processEvent(ctx, msg)
		outcome := settlementFor(err, msg.Delivery.Redelivered)

		if err != nil {
			w.logger.Error("Event processing failed",
				slog.String("worker_name", workerName),
				slog.String("event_id", msg.Event.EventID),
				slog.String("outcome", outcome.String()),
				slog.Any("error", err),
			)
		}

		w.settle(msg.Delivery, outcome)
	}

	w.logger.Debug("Worker goroutine stopping - messages closed",
		slog.String("worker_name", workerName),
	)
}

// settlementFor decides between ack, requeue and drop. A redelivered message
// that fails again is dropped so a poisoned event cannot loop forever, unless
// the failure came from the worker shutting down.
func settlementFor(err error, redelivered bool) domain.Settlement {
	switch {
	case err == nil:
		return domain.SettleAck
	case isDuplicate(err):
		return domain.SettleAck
	case isInterrupted(err):
		return domain.SettleRequeue
	case isRetryable(err) && !redelivered:
		return domain.SettleRequeue
	default:
		return domain.SettleDrop
	}
}

func (w *Worker) settle(d amqp.Delivery, outcome domain.Settlement) {
	var err error
	switch outcome {
	case domain.SettleAck:
		err = d.Ack(false)
	case domain.SettleRequeue:
		err = d.Nack(false, true)
	default:
		err = d.Nack(false, false)
	}

	if err != nil {
		w.logger.Error("Failed to settle message",
			slog.Uint64("delivery_tag", d.DeliveryTag),
			slog.String("outcome", outcome.String()),
			slog.Any("error", err),
		)
	}
}
