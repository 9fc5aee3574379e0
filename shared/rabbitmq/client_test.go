package rabbitmq

import (
	"context"
	"io"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_URI(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantVhost string
	}{
		{
			name:      "default vhost",
			config:    Config{Host: "localhost", Port: 5672, User: "guest", Password: "guest"},
			wantVhost: "/",
		},
		{
			name:      "custom port and vhost",
			config:    Config{Host: "mq.internal", Port: 5673, User: "jobs", Password: "s3cret", VHost: "jobboard"},
			wantVhost: "jobboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{config: &tt.config}

			uri, err := amqp.ParseURI(c.uri())
			require.NoError(t, err)
			assert.Equal(t, tt.config.Host, uri.Host)
			assert.Equal(t, tt.config.Port, uri.Port)
			assert.Equal(t, tt.config.User, uri.Username)
			assert.Equal(t, tt.config.Password, uri.Password)
			assert.Equal(t, tt.wantVhost, uri.Vhost)
		})
	}
}

func TestClient_NotConnected(t *testing.T) {
	c := &Client{
		config: &Config{QueueName: "jobboard.application_events"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	err := c.PublishWithRetry(context.Background(), Message{RoutingKey: "application.created"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")

	_, err = c.Consume("worker-1")
	require.Error(t, err)
	assert.False(t, c.IsConnected())
}
