package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"hotelbook/internal/notifications/handler"
	"hotelbook/internal/notifications/scheduler"
	"hotelbook/internal/notifications/service"
	"hotelbook/internal/stores"
	"hotelbook/pkg/config"
	"hotelbook/pkg/kafka"
	kafka_config "hotelbook/pkg/kafka/config"
	kafka_middleware "hotelbook/pkg/kafka/middleware"
	"hotelbook/pkg/rabbitmq"
)

const ServiceName = "notifications"

// consumer is a running broker subscription.
type consumer interface {
	Start(ctx context.Context) error
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Notifications service", "store", cfg.StoreBackend, "broker", cfg.NotifyBroker)
	defer cfg.GracefulShutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos := stores.Open(cfg)
	capacity := service.NewCapacityService(repos.Hotels, repos.Bookings, repos.Snapshots, cfg.CapacityWindowDays, cfg.Log)
	events := handler.NewEventHandler(capacity, cfg.Log)

	monitor, err := scheduler.NewCapacityMonitor(repos.Snapshots, cfg.CapacityAlertThreshold, cfg.CapacityCheckSchedule, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create capacity monitor", "error", err)
	}
	monitor.Start()

	sub, closeSub := subscribe(ctx, cfg, events)
	if sub == nil {
		cfg.Log.Warn("No broker configured, only the capacity monitor is running")
		<-ctx.Done()
	} else if err := sub.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped", "error", err)
	}

	cfg.Log.Info("Starting graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	stop()
	if closeSub != nil {
		if err := closeSub(); err != nil {
			cfg.Log.Error("Failed to close consumer", "error", err)
		}
	}
	monitor.Stop(shutdownCtx)
	cfg.Log.Info("Graceful shutdown completed")
}

func subscribe(ctx context.Context, cfg *config.Config, events *handler.EventHandler) (consumer, func() error) {
	switch cfg.NotifyBroker {
	case config.BrokerKafka:
		kafkaCfg, err := kafka_config.Load()
		if err != nil {
			cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
		}
		kafkaCfg.LogConfiguration(cfg.Log)

		c, err := kafka.NewConsumer(kafkaCfg, cfg.BookingTopic, cfg.ConsumerGroupID, cfg.BookingDLQTopic, events.Kafka(), cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
		}
		c.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		return c, c.Close

	case config.BrokerRabbitMQ:
		client := rabbitmq.NewClient(cfg.RabbitMQURL, cfg.Log)
		if err := client.Connect(ctx); err != nil {
			cfg.Log.Fatal("Failed to connect to RabbitMQ", "error", err)
		}
		if err := client.DeclareQueue(cfg.BookingQueue); err != nil {
			cfg.Log.Fatal("Failed to declare booking queue", "error", err)
		}
		return rabbitmq.NewConsumer(client, cfg.BookingQueue, ServiceName, events.RabbitMQ(), cfg.Log), client.Close

	default:
		return nil, nil
	}
}
