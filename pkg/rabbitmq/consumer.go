package rabbitmq

import (
	"context"
	"errors"
	"fmt"

	"hotelbook/pkg/logger"

	"github.com/streadway/amqp"
)

// Handler processes one delivery body.
type Handler func(ctx context.Context, body []byte) error

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth redelivering.
func Permanent(err error) error {
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

type Consumer struct {
	client  *Client
	queue   string
	tag     string
	handler Handler
	log     *logger.Logger
}

func NewConsumer(client *Client, queue, tag string, handler Handler, log *logger.Logger) *Consumer {
	return &Consumer{
		client:  client,
		queue:   queue,
		tag:     tag,
		handler: handler,
		log:     log.With("queue", queue),
	}
}

// Start consumes with manual acks until ctx is cancelled or the delivery
// channel closes.
func (c *Consumer) Start(ctx context.Context) error {
	ch, err := c.client.Channel()
	if err != nil {
		return err
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}

	deliveries, err := ch.Consume(
		c.queue, // queue
		c.tag,   // consumer
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", c.queue, err)
	}
	c.log.Info("Consuming queue")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return ErrNotConnected
			}
			c.handle(ctx, d)
		}
	}
}

// handle acks successes, drops permanent failures and messages that already
// failed once, and requeues everything else.
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	err := c.handler(ctx, d.Body)
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			c.log.Warn("Failed to ack message", "message_id", d.MessageId, "error", ackErr)
		}
		return
	}

	requeue := !IsPermanent(err) && !d.Redelivered
	c.log.Warn("Message processing failed",
		"message_id", d.MessageId,
		"redelivered", d.Redelivered,
		"requeue", requeue,
		"error", err,
	)
	if nackErr := d.Nack(false, requeue); nackErr != nil {
		c.log.Warn("Failed to nack message", "message_id", d.MessageId, "error", nackErr)
	}
}
