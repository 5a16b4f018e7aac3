package main

import (
	"hotelbook/internal/pricing"
	"hotelbook/pkg/app"
	"hotelbook/pkg/config"
)

const ServiceName = "pricing"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Pricing service")

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(nil, pricing.NewHandler(pricing.NewSeasonalModel(cfg.Log), cfg.Log))
	serverApp.Run()
}
