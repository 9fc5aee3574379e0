package domain

import (
	"github.com/cuongbtq/jobboard/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventMessage is a decoded delivery waiting for a pool goroutine
type EventMessage struct {
	Event    events.ApplicationEvent
	Delivery amqp.Delivery
}

// Settlement is what happens to a delivery once processing returns
type Settlement int

const (
	SettleAck Settlement = iota
	SettleRequeue
	SettleDrop // nack without requeue; dead-lettered when the queue has a DLX
)

func (s Settlement) String() string {
	switch s {
	case SettleAck:
		return "ack"
	case SettleRequeue:
		return "requeue"
	case SettleDrop:
		return "drop"
	}
	return "unknown"
}
