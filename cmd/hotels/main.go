package main

import (
	"context"

	bookinghandler "hotelbook/internal/bookings/handler"
	bookingservice "hotelbook/internal/bookings/service"
	bookingvalidator "hotelbook/internal/bookings/validator"
	hotelhandler "hotelbook/internal/hotels/handler"
	hotelservice "hotelbook/internal/hotels/service"
	hotelvalidator "hotelbook/internal/hotels/validator"
	"hotelbook/internal/pricing"
	"hotelbook/internal/stores"
	"hotelbook/pkg/app"
	"hotelbook/pkg/cache"
	"hotelbook/pkg/config"
	"hotelbook/pkg/notify"
)

const ServiceName = "hotels"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Hotels service", "store", cfg.StoreBackend, "broker", cfg.NotifyBroker)

	repos := stores.Open(cfg)
	cfg.SetRedis()
	searchCache := cache.NewSearchCache(cfg.Client.Redis, cfg.SearchCacheTTL, cfg.Log)

	dispatcher, err := notify.NewFromConfig(context.Background(), cfg)
	if err != nil {
		cfg.Log.Error("Broker unavailable, booking notifications go to the log", "broker", cfg.NotifyBroker, "error", err)
		dispatcher = notify.NewDispatcher(notify.NewLogPublisher(cfg.Log), cfg.NotifyBufferSize, cfg.NotifyPublishTimeout, cfg.Log)
	}

	bookingService := bookingservice.NewBookingService(
		repos.Bookings,
		bookingvalidator.NewBookingValidator(cfg.Log),
		searchCache,
		dispatcher,
		cfg,
	)
	hotelService := hotelservice.NewHotelService(
		repos.Hotels,
		hotelvalidator.NewHotelValidator(cfg.Log),
		searchCache,
		cfg,
	)
	predictor := pricing.NewClient(cfg.PricingServiceURL, cfg.PricingTimeout, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(repos.Bookings,
		hotelhandler.NewHotelHandler(hotelService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		pricing.NewHandler(predictor, cfg.Log),
	)
	serverApp.OnShutdown(func(ctx context.Context) {
		if err := dispatcher.Close(ctx); err != nil {
			cfg.Log.Error("Failed to drain booking notifications", "error", err)
		}
		published, dropped := dispatcher.Stats()
		cfg.Log.Info("Booking notifications drained", "published", published, "dropped", dropped)
	})
	serverApp.Run()
}
