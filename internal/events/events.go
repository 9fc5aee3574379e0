// Package events carries application changes from the api-service to the
// worker-service over RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/shared/rabbitmq"
	"github.com/google/uuid"
)

// Type names what happened to an application
type Type string

const (
	TypeApplicationCreated            Type = "application.created"
	TypeApplicationStatusChanged      Type = "application.status_changed"
	TypeApplicationInterviewScheduled Type = "application.interview_scheduled"
	TypeApplicationInterviewUpdated   Type = "application.interview_updated"
)

func (t Type) Valid() bool {
	switch t {
	case TypeApplicationCreated, TypeApplicationStatusChanged,
		TypeApplicationInterviewScheduled, TypeApplicationInterviewUpdated:
		return true
	}
	return false
}

// ContentType is the AMQP content type of an encoded event
const ContentType = "application/json"

// ErrInvalidEvent is returned when a message cannot be decoded into a usable event
var ErrInvalidEvent = errors.New("invalid application event")

// ApplicationEvent is the message body published for every application change
type ApplicationEvent struct {
	EventID       string                   `json:"event_id"`
	Type          Type                     `json:"type"`
	ApplicationID int64                    `json:"application_id"`
	JobID         int64                    `json:"job_id"`
	CandidateID   int64                    `json:"candidate_id"`
	Status        domain.ApplicationStatus `json:"status"`
	OccurredAt    time.Time                `json:"occurred_at"`
}

// NewApplicationEvent snapshots app under a fresh event id
func NewApplicationEvent(t Type, app *domain.Application, at time.Time) ApplicationEvent {
	return ApplicationEvent{
		EventID:       uuid.NewString(),
		Type:          t,
		ApplicationID: app.ID,
		JobID:         app.JobID,
		CandidateID:   app.CandidateID,
		Status:        app.Status,
		OccurredAt:    at.UTC(),
	}
}

// Validate checks the fields the worker relies on
func (e ApplicationEvent) Validate() error {
	if _, err := uuid.Parse(e.EventID); err != nil {
		return fmt.Errorf("%w: event_id %q is not a UUID", ErrInvalidEvent, e.EventID)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	if e.ApplicationID <= 0 || e.JobID <= 0 || e.CandidateID <= 0 {
		return fmt.Errorf("%w: application, job and candidate ids are required", ErrInvalidEvent)
	}
	return nil
}

// Encode marshals the event as JSON
func (e ApplicationEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Decode parses and validates a message body
func Decode(body []byte) (ApplicationEvent, error) {
	var e ApplicationEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return e, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := e.Validate(); err != nil {
		return e, err
	}
	return e, nil
}

// Publisher sends application events somewhere
type Publisher interface {
	Publish(ctx context.Context, e ApplicationEvent) error
}

// NopPublisher drops every event; used when no broker is configured
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ApplicationEvent) error { return nil }

// MessagePublisher is the part of the RabbitMQ client the publisher needs
type MessagePublisher interface {
	PublishWithRetry(ctx context.Context, msg rabbitmq.Message) error
}

// RabbitPublisher encodes events and publishes them with retry
type RabbitPublisher struct {
	client MessagePublisher
	logger *slog.Logger
}

func NewRabbitPublisher(client MessagePublisher, logger *slog.Logger) *RabbitPublisher {
	return &RabbitPublisher{client: client, logger: logger}
}

func (p *RabbitPublisher) Publish(ctx context.Context, e ApplicationEvent) error {
	body, err := e.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	// the event type doubles as the topic routing key
	msg := rabbitmq.Message{
		RoutingKey:  string(e.Type),
		MessageID:   e.EventID,
		ContentType: ContentType,
		Body:        body,
	}
	if err := p.client.PublishWithRetry(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", e.Type, err)
	}

	p.logger.Debug("Application event published",
		slog.String("event_id", e.EventID),
		slog.String("type", string(e.Type)),
		slog.Int64("application_id", e.ApplicationID),
	)
	return nil
}
