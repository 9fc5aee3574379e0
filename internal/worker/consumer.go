package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobboard/internal/events"
	"github.com/cuongbtq/jobboard/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// setupConsumer starts a manual-ack consumer tagged with the worker id
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	deliveries, err := w.consumer.Consume(w.workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("RabbitMQ consumer started",
		slog.String("consumer_tag", w.workerID),
	)

	return deliveries, nil
}

// parseDelivery decodes and validates the event carried by a delivery
func parseDelivery(d amqp.Delivery) (*domain.EventMessage, error) {
	e, err := events.Decode(d.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return &domain.EventMessage{Event: e, Delivery: d}, nil
}

// startMessageDispatcher feeds decoded deliveries to the pool until it is
// told to stop. Undecodable messages are dropped here.
func (w *Worker) startMessageDispatcher(ctx context.Context, deliveries <-chan amqp.Delivery) {
	w.logger.Info("Message dispatcher started",
		slog.String("worker_id", w.workerID),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Message dispatcher stopped - context canceled")
			return

		case <-w.stopChan:
			w.logger.Info("Message dispatcher stopped - stop requested")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			msg, err := parseDelivery(delivery)
			if err != nil {
				w.logger.Error("Dropping malformed message",
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
					slog.String("body", string(delivery.Body)),
					slog.Any("error", err),
				)
				w.settle(delivery, domain.SettleDrop)
				continue
			}

			select {
			case w.messages <- msg:
				w.logger.Debug("Event dispatched to worker pool",
					slog.String("event_id", msg.Event.EventID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				w.logger.Info("Message dispatcher stopped while dispatching event")
				w.settle(delivery, domain.SettleRequeue)
				return
			case <-w.stopChan:
				w.logger.Info("Message dispatcher stopped while dispatching event")
				w.settle(delivery, domain.SettleRequeue)
				return
			}
		}
	}
}
