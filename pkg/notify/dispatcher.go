package notify

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/google/uuid"
)

var (
	ErrQueueFull        = errors.New("notification queue is full")
	ErrDispatcherClosed = errors.New("notification dispatcher is closed")
)

// Publisher delivers one booking event to a broker.
type Publisher interface {
	Publish(ctx context.Context, event model.BookingEvent) error
	Close() error
}

// Dispatcher publishes booking events in the background. Enqueue never
// blocks on the broker: events go through a bounded buffer drained by a
// single worker, and anything that cannot be buffered or published is
// dropped with a warning.
type Dispatcher struct {
	publisher Publisher
	queue     chan model.BookingEvent
	timeout   time.Duration
	log       *logger.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}

	published atomic.Int64
	dropped   atomic.Int64
}

func NewDispatcher(publisher Publisher, bufferSize int, publishTimeout time.Duration, log *logger.Logger) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	d := &Dispatcher{
		publisher: publisher,
		queue:     make(chan model.BookingEvent, bufferSize),
		timeout:   publishTimeout,
		log:       log,
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue buffers a confirmation event for the reservation. It returns
// ErrQueueFull or ErrDispatcherClosed when the event is dropped.
func (d *Dispatcher) Enqueue(_ context.Context, reservation *model.Reservation) error {
	event := model.NewBookingEvent(uuid.NewString(), reservation)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.dropped.Add(1)
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- event:
		return nil
	default:
		d.dropped.Add(1)
		return ErrQueueFull
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.queue {
		d.publish(event)
	}
}

func (d *Dispatcher) publish(event model.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, event); err != nil {
		d.dropped.Add(1)
		d.log.Warn("Booking notification dropped",
			"event_id", event.EventID,
			"reservation_id", event.ReservationID,
			"hotel_id", event.HotelID,
			"error", err,
		)
		return
	}
	d.published.Add(1)
	d.log.Debug("Booking notification published", "event_id", event.EventID, "reservation_id", event.ReservationID)
}

// Close stops accepting events, drains the buffer until ctx expires and
// closes the publisher.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	var drainErr error
	select {
	case <-d.done:
	case <-ctx.Done():
		drainErr = ctx.Err()
		d.log.Warn("Notification queue not drained before shutdown", "pending", len(d.queue))
	}

	return errors.Join(drainErr, d.publisher.Close())
}

// Stats returns the number of published and dropped events.
func (d *Dispatcher) Stats() (published, dropped int64) {
	return d.published.Load(), d.dropped.Load()
}
