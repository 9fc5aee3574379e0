package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobboard/internal/worker/domain"
)

// processEvent records one event within the per-event timeout. Store failures
// other than a duplicate are treated as transient. A failure caused by ctx
// itself being canceled reports ErrInterrupted.
func (w *Worker) processEvent(ctx context.Context, msg *domain.EventMessage) error {
	parent := ctx
	e := msg.Event

	w.logger.Info("Processing application event",
		slog.String("event_id", e.EventID),
		slog.String("type", string(e.Type)),
		slog.Int64("application_id", e.ApplicationID),
		slog.Bool("redelivered", msg.Delivery.Redelivered),
	)

	if w.eventTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.eventTimeout)
		defer cancel()
	}

	err := w.store.RecordEvent(ctx, e)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrEventAlreadyProcessed):
		w.logger.Warn("Event already processed, skipping",
			slog.String("event_id", e.EventID),
		)
		return err
	case parent.Err() != nil:
		return fmt.Errorf("%w: %w", domain.ErrInterrupted, err)
	default:
		return domain.NewRetryableError(err)
	}
}

func isDuplicate(err error) bool {
	return errors.Is(err, domain.ErrEventAlreadyProcessed)
}

func isInterrupted(err error) bool {
	return errors.Is(err, domain.ErrInterrupted)
}

func isRetryable(err error) bool {
	var retryableErr *domain.RetryableError
	return errors.As(err, &retryableErr)
}
