// File: hereforyou/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/renjoshini/hereforyou/config"
	"github.com/renjoshini/hereforyou/cron"
	"github.com/renjoshini/hereforyou/database"
	bookingRepoPkg "github.com/renjoshini/hereforyou/database/repository/booking"
	professionalRepoPkg "github.com/renjoshini/hereforyou/database/repository/professional"
	userRepoPkg "github.com/renjoshini/hereforyou/database/repository/user"
	"github.com/renjoshini/hereforyou/handlers"
	"github.com/renjoshini/hereforyou/middleware"
	"github.com/renjoshini/hereforyou/routes"
	"github.com/renjoshini/hereforyou/services/booking"
	"github.com/renjoshini/hereforyou/services/events"
	"github.com/renjoshini/hereforyou/services/notification"
	"github.com/renjoshini/hereforyou/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()
	if err := utils.FirebaseInit(); err != nil {
		logger.Fatal("main: failed to initialize firebase", zap.Error(err))
	}

	policy, err := booking.PolicyFromConfig(config.AppConfig)
	if err != nil {
		logger.Fatal("main: invalid booking policy", zap.Error(err))
	}

	publisher, err := events.NewPublisher(config.AppConfig.AMQPURL, config.AppConfig.AMQPExchange)
	if err != nil {
		logger.Fatal("main: failed to connect to event broker", zap.Error(err))
	}
	defer publisher.Close()

	// repositories.
	db := database.Database()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(db)
	professionalRepo := professionalRepoPkg.NewMongoProfessionalRepo(db)
	userRepo := userRepoPkg.NewMongoUserRepo(db)

	// notification delivery: the API enqueues, the worker delivers.
	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()

	var pushSender notification.Sender
	if utils.FCMClient != nil {
		pushSender = notification.NewFCMSender(utils.FCMClient)
	}
	dispatcher := notification.NewDispatcher(pushSender, notification.NewLogSMSSender(logger))
	backgroundCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	worker := cron.InitNotificationWorker(backgroundCtx, dispatcher)

	// services.
	bookingService := booking.NewBookingService(
		bookingRepo,
		professionalRepo,
		userRepo,
		notification.NewQueueNotifier(queueClient),
		publisher,
		booking.NewRedisAvailabilityCache(utils.GetCacheClient()),
		policy,
	)

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	userDeviceHandler := handlers.NewUserDeviceHandler(userRepo)
	handlerBundle := handlers.NewHandlerBundle(userRepo, utils.GetAuthCacheClient(), bookingHandler, userDeviceHandler)

	utils.StartHealthMonitor(backgroundCtx, utils.RedisClients(), database.MongoClient, 60*time.Second)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	stopBackground()
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
