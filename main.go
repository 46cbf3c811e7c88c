// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"fieldpro/cmd"
	"fieldpro/internal/data/gateway"
	"fieldpro/internal/events"
	"fieldpro/internal/store"
	"fieldpro/internal/usecase"
	"fieldpro/internal/wire"
	"fieldpro/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Backend gateway and in-memory snapshot store
	client := gateway.NewClient(config.Backend, logger)
	gw := gateway.NewGateway(client, logger)
	snapshots := store.NewMemoryStore()

	// Wire all dependencies
	service := usecase.NewService(gw, snapshots, config, logger)
	app := wire.Wiring(service, config, logger)

	// Push event channel
	dispatcher := events.NewDispatcher(snapshots, service.Booking, service.Charge, logger)
	consumer := events.NewConsumer(config.Kafka, dispatcher, logger)
	defer consumer.Close()

	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error("Event consumer stopped", zap.Error(err))
		}
	}()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(ctx, app.Router, config.App.Port)

	// Stop active payment session timers before exit
	service.Payment.Shutdown()

	logger.Info("Shutdown complete")
}
