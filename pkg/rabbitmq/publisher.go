package rabbitmq

import (
	"context"
	"time"

	"github.com/streadway/amqp"
)

type publishFunc func(exchange, key string, msg amqp.Publishing) error

// Publisher sends persistent messages to a queue through the default
// exchange.
type Publisher struct {
	publish publishFunc
	queue   string
}

func NewPublisher(client *Client, queue string) *Publisher {
	return &Publisher{publish: client.publish, queue: queue}
}

func (p *Publisher) Queue() string {
	return p.queue
}

// Publish does not wait for a broker confirm; ctx only bounds the wait for
// an already-cancelled caller.
func (p *Publisher) Publish(ctx context.Context, messageID, eventType string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.publish("", p.queue, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
	})
}
