package kafka

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"hotelbook/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return kafka.Message{}, io.EOF
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) committedOffsets() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func TestMessageBuilder(t *testing.T) {
	msg, err := NewMessage().
		WithKey("hotel-1").
		WithValue(map[string]string{"id": "r1"}).
		WithEventType("booking.confirmed").
		WithSource("hotels").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "hotel-1", msg.Key)
	assert.JSONEq(t, `{"id":"r1"}`, string(msg.Value))
	assert.NotEmpty(t, msg.GetEventID())
	assert.Equal(t, "booking.confirmed", msg.GetEventType())
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])

	_, err = NewMessage().WithValue(make(chan int)).Build()
	assert.Equal(t, ErrorTypePermanent, ClassifyError(err))
}

func TestRetryCount(t *testing.T) {
	msg := Message{}
	assert.Zero(t, msg.GetRetryCount())
	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	assert.Equal(t, 12, msg.GetRetryCount())
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, ErrorTypeUnknown, ClassifyError(nil))
	assert.Equal(t, ErrorTypeTransient, ClassifyError(errors.New("dial tcp: Connection Refused")))
	assert.Equal(t, ErrorTypeTransient, ClassifyError(context.DeadlineExceeded))
	assert.Equal(t, ErrorTypePermanent, ClassifyError(errors.New("bad payload")))
	assert.Equal(t, ErrorTypeTransient, ClassifyError(NewTransientError("x", nil)))

	assert.True(t, ShouldRetry(context.DeadlineExceeded, 0, 3))
	assert.False(t, ShouldRetry(context.DeadlineExceeded, 3, 3))
	assert.False(t, ShouldRetry(errors.New("bad payload"), 0, 3))
}

func TestProducerPublish(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "booking-events")

	var seenTopic string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		seenTopic = msg.Topic
		return next(ctx, msg)
	})

	msg, err := NewMessage().WithKey("h1").WithValue("x").Build()
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), msg))
	require.Len(t, w.messages, 1)
	assert.Equal(t, "h1", string(w.messages[0].Key))
	assert.Empty(t, w.messages[0].Topic, "topic is owned by the writer")
	assert.Equal(t, "booking-events", seenTopic)

	assert.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("x")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k"}), ErrEmptyValue)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
	assert.ErrorIs(t, p.Publish(context.Background(), msg), ErrProducerClosed)
}

func TestProducerWriteFailureIsTransient(t *testing.T) {
	p := newProducer(&fakeWriter{err: errors.New("broker down")}, "t")
	msg, _ := NewMessage().WithKey("h1").WithValue("x").Build()

	err := p.Publish(context.Background(), msg)
	assert.Equal(t, ErrorTypeTransient, ClassifyError(err))
}

func TestConsumerCommitsAndDeadLetters(t *testing.T) {
	good, _ := NewMessage().WithKey("h1").WithValue("ok").Build()
	bad, _ := NewMessage().WithKey("h2").WithValue("bad").Build()
	goodKM, badKM := toKafkaMessage(good), toKafkaMessage(bad)
	goodKM.Offset, badKM.Offset = 1, 2

	reader := &fakeReader{queue: []kafka.Message{goodKM, badKM}}
	dlq := &fakeWriter{}

	var handled sync.WaitGroup
	handled.Add(2)
	handler := func(_ context.Context, msg Message) error {
		defer handled.Done()
		if msg.Key == "h2" {
			return NewPermanentError("deserialization failed", nil)
		}
		return nil
	}
	c := newConsumer(reader, dlq, "booking-events", "notification-service", 3, handler, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	handled.Wait()
	require.Eventually(t, func() bool { return len(reader.committedOffsets()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	require.NoError(t, c.Close())

	assert.Equal(t, []int64{1, 2}, reader.committedOffsets())
	require.Len(t, dlq.messages, 1)
	headers := fromKafkaMessage(dlq.messages[0]).Headers
	assert.Equal(t, "booking-events", headers[HeaderOriginalTopic])
	assert.Equal(t, "notification-service", headers[HeaderDLQConsumerGroup])
	assert.Contains(t, headers[HeaderDLQError], "deserialization failed")
}

func TestConsumerRetriesTransientFailures(t *testing.T) {
	attempts := 0
	handler := func(context.Context, Message) error {
		attempts++
		if attempts < 3 {
			return NewTransientError("store busy", nil)
		}
		return nil
	}
	c := newConsumer(&fakeReader{}, nil, "t", "g", 3, handler, logger.Discard())
	c.retryBackoff = time.Millisecond

	msg, _ := NewMessage().WithKey("k").WithValue("v").Build()
	require.NoError(t, c.processMessage(context.Background(), msg))
	assert.Equal(t, 3, attempts)
}

func TestConsumerStopsOnClosedReader(t *testing.T) {
	reader := &fakeReader{closed: true}
	c := newConsumer(reader, nil, "t", "g", 0, func(context.Context, Message) error { return nil }, logger.Discard())
	assert.ErrorIs(t, c.Start(context.Background()), ErrConsumerClosed)
}
