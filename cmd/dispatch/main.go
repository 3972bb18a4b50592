package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ecopath/dispatch/internal/pkg/config"
	"github.com/ecopath/dispatch/internal/pkg/database"
	"github.com/ecopath/dispatch/internal/pkg/health"
	"github.com/ecopath/dispatch/internal/pkg/logger"
	"github.com/ecopath/dispatch/internal/pkg/middleware"
	natspkg "github.com/ecopath/dispatch/internal/pkg/nats"
	"github.com/ecopath/dispatch/internal/pkg/server"
	wspkg "github.com/ecopath/dispatch/internal/pkg/websocket"
	driverGateway "github.com/ecopath/dispatch/services/drivers/gateway"
	driverHTTP "github.com/ecopath/dispatch/services/drivers/handler/http"
	driverRepository "github.com/ecopath/dispatch/services/drivers/repository"
	driverUsecase "github.com/ecopath/dispatch/services/drivers/usecase"
	notifyNats "github.com/ecopath/dispatch/services/notify/handler/nats"
	notifyWS "github.com/ecopath/dispatch/services/notify/handler/websocket"
	rideGateway "github.com/ecopath/dispatch/services/rides/gateway"
	rideHTTP "github.com/ecopath/dispatch/services/rides/handler/http"
	rideRepository "github.com/ecopath/dispatch/services/rides/repository"
	rideUsecase "github.com/ecopath/dispatch/services/rides/usecase"
	"github.com/labstack/echo/v4"
)

func main() {
	appName := "dispatch-service"
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/dispatch.env"
	}
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.NewZapLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	shutdownManager := server.NewShutdownManager(zapLogger)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	shutdownManager.Register(func(context.Context) error {
		return postgresClient.Close()
	})

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	shutdownManager.Register(func(context.Context) error {
		return redisClient.Close()
	})

	// Initialize NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	shutdownManager.Register(func(context.Context) error {
		natsClient.Close()
		return nil
	})

	// Driver pool
	driverRepo := driverRepository.NewDriverRepository(configs, postgresClient.GetDB(), redisClient)
	driverGW := driverGateway.NewDriverGW(natsClient)
	driverUC := driverUsecase.NewDriverUC(configs, driverRepo, driverGW)
	driverHandler := driverHTTP.NewDriverHandler(driverUC)

	// Ride lifecycle
	rideRepo := rideRepository.NewRideRepository(configs, postgresClient.GetDB(), redisClient)
	rideGW := rideGateway.NewRideGW(natsClient)
	rideUC := rideUsecase.NewRideUC(configs, rideRepo, rideGW, driverUC)
	rideHandler := rideHTTP.NewRideHandler(rideUC)

	// Dispatch channel
	manager := wspkg.NewManager(configs.JWT)
	wsManager := notifyWS.NewWebSocketManager(rideUC, driverUC, manager)
	natsHandler := notifyNats.NewNatsHandler(wsManager, natsClient)
	if err := natsHandler.InitConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}
	shutdownManager.Register(func(context.Context) error {
		natsHandler.Stop()
		return nil
	})

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName)

	api := e.Group("", middleware.JWTAuthMiddleware(configs.JWT))
	rideHandler.RegisterRoutes(api)
	driverHandler.RegisterRoutes(api)

	e.GET("/ws", wsManager.HandleWebSocket)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server error", logger.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdownManager.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Component shutdown error", logger.Err(err))
	}
}
