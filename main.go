// File: shutterhub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shutterhub/config"
	"shutterhub/cron"
	"shutterhub/database"
	bookingRepo "shutterhub/database/repository/booking"
	resourceRepo "shutterhub/database/repository/resource"
	"shutterhub/handlers"
	"shutterhub/middleware"
	"shutterhub/routes"
	booking "shutterhub/services/booking"
	"shutterhub/services/notification"
	"shutterhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSnapshotCache()
	utils.InitTokenRegistry()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	resources := resourceRepo.NewMongoResourceRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	reservations := bookingRepo.NewMongoReservationStore()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(notification.NewRedisTokenSource())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	scheduler := cron.NewScheduler()
	defer scheduler.Close()

	bookingService := &booking.DefaultBookingService{
		Resources:       resources,
		Bookings:        bookings,
		Availability:    booking.NewAvailabilityIndex(reservations),
		Payments:        booking.NewStripePaymentPort(),
		Notifier:        notificationService,
		Expiry:          scheduler,
		Pricing:         booking.PricingConfig{WeeklyRateMultiplier: config.AppConfig.WeeklyRateMultiplier},
		PendingTTL:      time.Duration(config.AppConfig.PendingTTLMinutes) * time.Minute,
		DefaultCurrency: config.AppConfig.DefaultCurrency,
		Cache:           utils.GetSnapshotCacheClient(),
	}

	cron.InitExpiryWorker(bookingService)

	utils.StartHealthMonitor(
		utils.GetSnapshotCacheClient(),
		utils.GetTokenRegistryClient(),
		database.MongoClient,
	)

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	routes.RegisterRoutes(router, bookingHandler)

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

	logger.Sugar().Info("main: server stopped gracefully")
}
