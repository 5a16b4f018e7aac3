package rabbitmq

import (
	"context"
	"errors"
	"testing"

	"hotelbook/pkg/logger"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ackRecorder struct {
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (a *ackRecorder) Ack(tag uint64, _ bool) error {
	a.acked = append(a.acked, tag)
	return nil
}

func (a *ackRecorder) Nack(tag uint64, _ bool, requeue bool) error {
	a.nacked = append(a.nacked, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestConsumerAckPolicy(t *testing.T) {
	tests := []struct {
		name        string
		handlerErr  error
		redelivered bool
		wantAck     bool
		wantRequeue bool
	}{
		{name: "success", wantAck: true},
		{name: "malformed", handlerErr: Permanent(errors.New("bad json"))},
		{name: "transient first time", handlerErr: errors.New("store down"), wantRequeue: true},
		{name: "transient redelivered", handlerErr: errors.New("store down"), redelivered: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &ackRecorder{}
			c := NewConsumer(nil, "booking_queue", "test", func(context.Context, []byte) error {
				return tt.handlerErr
			}, logger.Discard())

			c.handle(context.Background(), amqp.Delivery{
				Acknowledger: rec,
				DeliveryTag:  7,
				Redelivered:  tt.redelivered,
				Body:         []byte(`{}`),
			})

			if tt.wantAck {
				assert.Equal(t, []uint64{7}, rec.acked)
				assert.Empty(t, rec.nacked)
				return
			}
			require.Equal(t, []uint64{7}, rec.nacked)
			assert.Equal(t, tt.wantRequeue, rec.requeue[0])
		})
	}
}

func TestPermanent(t *testing.T) {
	base := errors.New("bad json")
	err := Permanent(base)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, base)
	assert.False(t, IsPermanent(base))
}

func TestPublisherSendsPersistentMessages(t *testing.T) {
	var gotKey string
	var got amqp.Publishing
	p := &Publisher{
		queue: "booking_queue",
		publish: func(exchange, key string, msg amqp.Publishing) error {
			assert.Empty(t, exchange)
			gotKey, got = key, msg
			return nil
		},
	}

	require.NoError(t, p.Publish(context.Background(), "evt-1", "booking.confirmed", []byte(`{"id":"r1"}`)))
	assert.Equal(t, "booking_queue", gotKey)
	assert.Equal(t, uint8(amqp.Persistent), got.DeliveryMode)
	assert.Equal(t, "evt-1", got.MessageId)
	assert.Equal(t, "booking.confirmed", got.Type)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, "evt-2", "booking.confirmed", nil), context.Canceled)
}

func TestClientNotConnected(t *testing.T) {
	c := NewClient("amqp://localhost", logger.Discard())
	assert.False(t, c.IsConnected())
	_, err := c.Channel()
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, c.DeclareQueue("q"), ErrNotConnected)
	assert.NoError(t, c.Close())
}
