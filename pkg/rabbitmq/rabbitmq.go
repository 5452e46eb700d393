package rabbitmq

import (
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
)

// DefaultExchange is the topic exchange session and product events go to.
const DefaultExchange = "artisanmart.events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL      string
	Exchange string
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable
// topic exchange events are published to.
func NewClient(cfg Config) (*Client, error) {
	exchange := cfg.Exchange
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	log.Printf("RabbitMQ client connected, exchange %s declared.", exchange)

	return &Client{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
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
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a JSON body to the exchange under routingKey.
func (c *Client) Publish(routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.channel.Publish(
		c.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	log.Printf(" [x] Sent %s event: %s", routingKey, body)
	return nil
}

// Consume binds an exclusive, auto-deleted queue to the exchange with
// bindingKey (for example "session.*") and hands every delivery to handler
// until the channel closes. Deliveries the handler fails on are dropped.
func (c *Client) Consume(bindingKey string, handler func(routingKey string, body []byte) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := c.channel.QueueDeclare(
		"",    // name: broker generated
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}
	if err := c.channel.QueueBind(queue.Name, bindingKey, c.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue to %s: %w", bindingKey, err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for %s events", bindingKey)

	for msg := range msgs {
		if err := handler(msg.RoutingKey, msg.Body); err != nil {
			log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
			if nackErr := msg.Nack(false, false); nackErr != nil {
				log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
			}
			continue
		}
		if ackErr := msg.Ack(false); ackErr != nil {
			log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
		}
	}
	return nil
}
