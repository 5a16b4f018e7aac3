package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hotelbook/pkg/logger"

	"github.com/streadway/amqp"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
)

var ErrNotConnected = errors.New("rabbitmq: not connected")

// Client owns one AMQP connection and a channel shared by the publisher and
// the consumer. amqp channels are not safe for concurrent publishes, so
// publishing goes through Client.publish.
type Client struct {
	url       string
	log       *logger.Logger
	conn      *amqp.Connection
	channel   *amqp.Channel
	publishMu sync.Mutex
	mu        sync.RWMutex
	closed    bool
}

func NewClient(url string, log *logger.Logger) *Client {
	return &Client{url: url, log: log}
}

// Connect dials the broker, retrying a few times while it starts up.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		c.conn, err = amqp.Dial(c.url)
		if err == nil {
			break
		}
		c.log.Warn("RabbitMQ connection failed", "attempt", attempt, "max_attempts", connectAttempts, "error", err)
		if attempt == connectAttempts {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(connectDelay):
		}
	}

	c.channel, err = c.conn.Channel()
	if err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	c.log.Info("Connected to RabbitMQ")
	return nil
}

// DeclareQueue declares a durable queue that survives broker restarts.
func (c *Client) DeclareQueue(name string) error {
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return nil
}

func (c *Client) Channel() (*amqp.Channel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed || c.conn == nil || c.conn.IsClosed() {
		return nil, ErrNotConnected
	}
	return c.channel, nil
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil && !c.conn.IsClosed()
}

func (c *Client) publish(exchange, key string, msg amqp.Publishing) error {
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	return ch.Publish(exchange, key, false, false, msg)
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("channel close: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("connection close: %w", err))
		}
	}
	return errors.Join(errs...)
}
