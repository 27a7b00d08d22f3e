// File: santai/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"santai/config"
	"santai/cron"
	"santai/database"
	bookingRepoPkg "santai/database/repository/booking"
	therapistRepoPkg "santai/database/repository/therapist"
	"santai/handlers"
	"santai/middleware"
	"santai/routes"
	"santai/services/booking"
	"santai/services/notification"
	"santai/services/therapist"
	"santai/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	mongoClient, err := database.Connect(context.Background())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}

	utils.InitAuthCache()
	utils.InitEventsClient()
	utils.FirebaseInit()

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetAuthCacheClient(),
		utils.GetEventsClient(),
	}, mongoClient)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	eventPublisher := bookingRepoPkg.NewRedisEventPublisher(utils.GetEventsClient(), utils.BookingEventsChannel)
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(mongoClient, eventPublisher)
	therapistRepo := therapistRepoPkg.NewMongoTherapistRepo(mongoClient)

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:                   bookingRepo,
		Events:                 utils.GetEventsClient(),
		EventsChannel:          utils.BookingEventsChannel,
		ResponseTimeoutMinutes: config.AppConfig.ResponseTimeoutMinutes,
		DuplicateWindowMinutes: config.AppConfig.DuplicateWindowMinutes,
		ListingMaxItems:        int64(config.AppConfig.ProviderListingMaxItems),
	}

	therapistService := &therapist.DefaultTherapistService{
		Repo:      therapistRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}

	notificationService := &notification.DefaultNotificationService{
		Client:        utils.FCMClient,
		TherapistRepo: therapistRepo,
	}

	// Background expiry worker and its enqueue-side client.
	cron.InitExpiryWorker(bookingService, notificationService)
	expiryQueue := cron.NewExpiryQueueClient()
	defer expiryQueue.Close()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		TherapistRepo: therapistRepo,

		// Booking endpoints.
		CreateBookingHandler:   handlers.CreateBookingHandler(bookingService, notificationService, expiryQueue),
		AcceptBookingHandler:   handlers.AcceptBookingHandler(bookingService),
		RejectBookingHandler:   handlers.RejectBookingHandler(bookingService),
		CompleteBookingHandler: handlers.CompleteBookingHandler(bookingService),
		ListPendingHandler:     handlers.ListPendingHandler(bookingService),
		StreamBookingsHandler:  handlers.StreamBookingsHandler(bookingService),

		// Therapist endpoints.
		RegisterTherapistHandler:     handlers.RegisterTherapistHandler(therapistService),
		AuthenticateTherapistHandler: handlers.AuthenticateTherapistHandler(therapistService),
		SignOutTherapistHandler:      handlers.SignOutTherapistHandler(therapistService),
		UpdateFCMTokenHandler:        handlers.UpdateFCMTokenHandler(therapistService),
		GetTherapistHandler:          handlers.GetTherapistHandler(therapistService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
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
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	if err := database.Disconnect(mongoClient); err != nil {
		logger.Sugar().Errorf("main: failed to close MongoDB connection: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
