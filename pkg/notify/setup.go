package notify

import (
	"context"
	"fmt"

	"hotelbook/pkg/config"
	"hotelbook/pkg/kafka"
	kafka_config "hotelbook/pkg/kafka/config"
	kafka_middleware "hotelbook/pkg/kafka/middleware"
	"hotelbook/pkg/rabbitmq"
)

// NewPublisher connects the publisher selected by NOTIFY_BROKER.
func NewPublisher(ctx context.Context, cfg *config.Config) (Publisher, error) {
	switch cfg.NotifyBroker {
	case config.BrokerKafka:
		kafkaCfg, err := kafka_config.Load()
		if err != nil {
			return nil, err
		}
		kafkaCfg.LogConfiguration(cfg.Log)

		producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingTopic, cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka producer: %w", err)
		}
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		return NewKafkaPublisher(producer), nil

	case config.BrokerRabbitMQ:
		client := rabbitmq.NewClient(cfg.RabbitMQURL, cfg.Log)
		if err := client.Connect(ctx); err != nil {
			return nil, err
		}
		if err := client.DeclareQueue(cfg.BookingQueue); err != nil {
			_ = client.Close()
			return nil, err
		}
		return NewRabbitMQPublisher(client, cfg.BookingQueue), nil

	default:
		return NewLogPublisher(cfg.Log), nil
	}
}

// NewFromConfig builds a running dispatcher for the configured broker.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Dispatcher, error) {
	publisher, err := NewPublisher(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewDispatcher(publisher, cfg.NotifyBufferSize, cfg.NotifyPublishTimeout, cfg.Log), nil
}
