package handler

import (
	"context"
	"encoding/json"
	"errors"

	"hotelbook/internal/notifications/service"
	"hotelbook/pkg/kafka"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
	"hotelbook/pkg/rabbitmq"
)

var errMissingHotel = errors.New("booking event has no hotel id")

type EventProcessor interface {
	HandleBookingConfirmed(ctx context.Context, event model.BookingEvent) error
}

type EventHandler struct {
	processor EventProcessor
	log       *logger.Logger
}

func NewEventHandler(processor EventProcessor, log *logger.Logger) *EventHandler {
	return &EventHandler{
		processor: processor,
		log:       log,
	}
}

// handle reports whether a failure is permanent, meaning redelivery would
// fail the same way.
func (h *EventHandler) handle(ctx context.Context, event model.BookingEvent) (bool, error) {
	if event.EventType != model.EventBookingConfirmed {
		h.log.Debug("Ignoring event", "event_id", event.EventID, "event_type", event.EventType)
		return false, nil
	}
	if event.HotelID == "" {
		return true, errMissingHotel
	}

	err := h.processor.HandleBookingConfirmed(ctx, event)
	if err == nil {
		return false, nil
	}
	return errors.Is(err, service.ErrUnknownHotel), err
}

// Kafka adapts the handler to the Kafka consumer. Malformed events go to the
// DLQ; store faults are retried.
func (h *EventHandler) Kafka() kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event model.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}

		permanent, err := h.handle(ctx, event)
		switch {
		case err == nil:
			return nil
		case permanent:
			return kafka.NewPermanentError("booking event rejected", err)
		default:
			return kafka.NewTransientError("booking event processing failed", err)
		}
	}
}

// RabbitMQ adapts the handler to the RabbitMQ consumer. Malformed events are
// rejected without requeue.
func (h *EventHandler) RabbitMQ() rabbitmq.Handler {
	return func(ctx context.Context, body []byte) error {
		var event model.BookingEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return rabbitmq.Permanent(err)
		}

		permanent, err := h.handle(ctx, event)
		if permanent {
			return rabbitmq.Permanent(err)
		}
		return err
	}
}
