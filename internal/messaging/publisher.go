// Package messaging publishes story lifecycle events to RabbitMQ so
// downstream consumers (analytics, illustration workers) can react
// without coupling to the request path.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const publishTimeout = 10 * time.Second

// StoryEvent is the wire payload for a story lifecycle event.
type StoryEvent struct {
	StoryID uuid.UUID `json:"story_id"`
	UserID  uuid.UUID `json:"user_id"`
	Event   string    `json:"event"`
}

// Event names.
const (
	EventStoryGenerated = "story.generated"
	EventStoryApproved  = "story.approved"
	EventStoryDeleted   = "story.deleted"
)

// RabbitEventPublisher pushes story events onto a durable queue.
type RabbitEventPublisher struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
	logger    zerolog.Logger
}

// NewRabbitEventPublisher opens a channel and declares the queue. The queue
// parameters must match the consumers (durable=true).
func NewRabbitEventPublisher(conn *amqp.Connection, queueName string, logger zerolog.Logger) (*RabbitEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("event publisher: failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("event publisher: failed to declare queue '%s': %w", queueName, err)
	}

	logger.Info().Str("queue", queueName).Msg("story event publisher initialized")
	return &RabbitEventPublisher{
		conn:      conn,
		channel:   ch,
		queueName: queueName,
		logger:    logger.With().Str("component", "event_publisher").Logger(),
	}, nil
}

// PublishStoryEvent sends one event. Callers treat failures as non-fatal.
func (p *RabbitEventPublisher) PublishStoryEvent(ctx context.Context, event StoryEvent) error {
	if p.channel == nil {
		return errors.New("event publisher: channel is not initialized")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event publisher: failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(pubCtx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("event publisher: failed to publish to '%s': %w", p.queueName, err)
	}

	p.logger.Debug().
		Str("event", event.Event).
		Str("story_id", event.StoryID.String()).
		Msg("story event published")
	return nil
}

// Close releases the channel. The connection belongs to the caller.
func (p *RabbitEventPublisher) Close() error {
	if p.channel != nil {
		return p.channel.Close()
	}
	return nil
}
