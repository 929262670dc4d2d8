// Package notify announces stored audio on a NATS subject.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/book-expert/events"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// NatsPublisher publishes AudioChunkCreatedEvent messages for uploaded audio.
type NatsPublisher struct {
	natsConnection *nats.Conn
	subject        string
}

// NewNatsPublisher creates a publisher for subject.
func NewNatsPublisher(natsConnection *nats.Conn, subject string) *NatsPublisher {
	return &NatsPublisher{
		natsConnection: natsConnection,
		subject:        subject,
	}
}

// PublishAudioCreated publishes a single-page AudioChunkCreatedEvent for key
// and flushes the connection so the event leaves before the process exits.
func (p *NatsPublisher) PublishAudioCreated(ctx context.Context, key string) error {
	event := &events.AudioChunkCreatedEvent{
		Header: events.EventHeader{
			Timestamp:  time.Now(),
			WorkflowID: uuid.NewString(),
			EventID:    uuid.NewString(),
			UserID:     "",
			TenantID:   "",
		},
		AudioKey:   key,
		PageNumber: 1,
		TotalPages: 1,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audio created event: %w", err)
	}

	err = p.natsConnection.Publish(p.subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish audio created event on %s: %w", p.subject, err)
	}

	err = p.natsConnection.FlushWithContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to flush audio created event: %w", err)
	}

	return nil
}
