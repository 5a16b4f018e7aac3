package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"hotelbook/pkg/kafka"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
	"hotelbook/pkg/rabbitmq"
)

const eventSource = "hotels"

type KafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// Publish keys the record by hotel id so events of one hotel stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event model.BookingEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.HotelID).
		WithValue(event).
		WithEventID(event.EventID).
		WithEventType(event.EventType).
		WithSource(eventSource).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

type RabbitMQPublisher struct {
	client    *rabbitmq.Client
	publisher *rabbitmq.Publisher
}

func NewRabbitMQPublisher(client *rabbitmq.Client, queue string) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		client:    client,
		publisher: rabbitmq.NewPublisher(client, queue),
	}
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event model.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode booking event: %w", err)
	}
	return p.publisher.Publish(ctx, event.EventID, event.EventType, body)
}

func (p *RabbitMQPublisher) Close() error {
	return p.client.Close()
}

// LogPublisher records notifications in the log when no broker is
// configured.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event model.BookingEvent) error {
	p.log.Info("Booking confirmed notification",
		"event_id", event.EventID,
		"reservation_id", event.ReservationID,
		"hotel_id", event.HotelID,
		"user_id", event.UserID,
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
