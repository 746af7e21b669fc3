package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
)

// DefaultQueue is the queue product events are routed to.
const DefaultQueue = "product_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     *zerolog.Logger
	// amqp channels must not be used for publishing from several goroutines at once.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the event queue.
func NewClient(cfg Config, log *zerolog.Logger) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Declare the event queue upfront.
	if err := declareQueue(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info().Str("queue", cfg.Queue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		log:     log,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,  // name
		true,  // durable (persists messages across broker restarts)
		false, // delete when unused
		false, // exclusive (only one connection can use it)
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", name, err)
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Publish marshals payload to JSON and sends it to the event queue as a
// persistent message of the given type.
func (c *Client) Publish(eventType string, payload interface{}) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available")
	}

	// Marshal the event payload to JSON
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    uuid.NewString(),
		Type:         eventType,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	c.mu.Lock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		msg,
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	c.log.Debug().Str("type", eventType).Str("message_id", msg.MessageId).Msg("event published")
	return nil
}

// Consume delivers messages from the event queue to handler in a separate
// goroutine. Messages are acked when handler returns nil and requeued otherwise.
func (c *Client) Consume(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available for consumption")
	}

	// Start consuming messages
	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag: generated by the broker
		false,   // auto-ack: messages are acknowledged manually below
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	// Process messages until the channel closes
	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				c.log.Error().Err(err).Uint64("tag", msg.DeliveryTag).Msg("failed to process message")
				// Negative acknowledge the message to requeue it
				if nackErr := msg.Nack(false, true); nackErr != nil {
					c.log.Error().Err(nackErr).Uint64("tag", msg.DeliveryTag).Msg("failed to nack message")
				}
				continue
			}
			// Manually acknowledge the message upon successful processing
			if ackErr := msg.Ack(false); ackErr != nil {
				c.log.Error().Err(ackErr).Uint64("tag", msg.DeliveryTag).Msg("failed to ack message")
			}
		}
		c.log.Info().Msg("event consumer stopped")
	}()

	return nil
}

// ActivityLogger returns a handler that writes each delivered event to log.
func ActivityLogger(log *zerolog.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		if !json.Valid(msg.Body) {
			// Requeueing would loop forever; drop it.
			log.Warn().Str("message_id", msg.MessageId).Msg("discarding non-JSON event")
			return nil
		}
		log.Info().
			Str("type", msg.Type).
			Str("message_id", msg.MessageId).
			RawJSON("event", msg.Body).
			Msg("product activity")
		return nil
	}
}
