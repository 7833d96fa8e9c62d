package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
)

const contactQueue = "contact_messages"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     zerolog.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel, and declares the contact
// message queue.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		contactQueue, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s queue: %w", contactQueue, err)
	}

	logger.Info().Str("queue", contactQueue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		log:     logger,
	}, nil
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
	if len(errs) > 0 {
		return fmt.Errorf("errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishContactReceived publishes a contact-message-received event for
// downstream notification consumers. The event is marshaled to JSON and
// published persistently.
func (c *Client) PublishContactReceived(event map[string]interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal contact event to JSON: %w", err)
	}

	err = c.channel.Publish(
		"",           // exchange: default exchange
		contactQueue, // routing key: the queue name
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.log.Debug().RawJSON("event", body).Msg("sent contact event")
	return nil
}

// ConsumeContactEvents registers a consumer on the contact queue and
// processes deliveries with the given handler. A handler error nacks the
// message for requeue; success acks it.
func (c *Client) ConsumeContactEvents(messageHandler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		contactQueue, // queue
		"",           // consumer tag
		false,        // auto-ack: manual acknowledgement
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info().Str("queue", contactQueue).Msg("waiting for contact events")

	go func() {
		for msg := range msgs {
			if err := messageHandler(msg); err != nil {
				c.log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("error processing message")
				if requeueErr := msg.Nack(false, true); requeueErr != nil {
					c.log.Error().Err(requeueErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("error nacking message")
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.log.Error().Err(ackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("error acking message")
			}
		}
	}()

	return nil
}
