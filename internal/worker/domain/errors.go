package domain

import "errors"

var (
	// ErrEventAlreadyProcessed is returned when the event id was recorded before
	ErrEventAlreadyProcessed = errors.New("event already processed")

	// ErrInvalidPayload is returned when a message body is not a usable event
	ErrInvalidPayload = errors.New("invalid event payload")

	// ErrInterrupted is returned when the worker shut down while the event was
	// being recorded; the event itself is fine and goes back on the queue
	ErrInterrupted = errors.New("event processing interrupted")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
