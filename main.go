// File: visionhealth/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visionhealth/config"
	"visionhealth/cron"
	"visionhealth/database"
	bookingRepo "visionhealth/database/repository/booking"
	catalogRepo "visionhealth/database/repository/catalog"
	doctorRepo "visionhealth/database/repository/doctor"
	paymentRepo "visionhealth/database/repository/payment"
	userRepoPkg "visionhealth/database/repository/user"
	"visionhealth/handlers"
	"visionhealth/middleware"
	"visionhealth/routes"
	"visionhealth/services/availability"
	"visionhealth/services/booking"
	"visionhealth/services/doctor"
	"visionhealth/services/payment"
	"visionhealth/services/user"
	"visionhealth/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB(logger)
	utils.InitCache(logger)
	db := database.DB()

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, time.Minute, utils.GetCacheClient(), database.MongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		logger.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	catalog := catalogRepo.NewMongoCatalogRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	doctors := doctorRepo.NewMongoDoctorRepo(db)
	payments := paymentRepo.NewMongoPaymentRepo(db)

	// services.
	tokens := utils.NewTokenIssuer(config.AppConfig.AccessTokenSecret, config.AppConfig.TokenTTL)

	availabilityService := &availability.DefaultAvailabilityService{
		Catalog:  catalog,
		Bookings: bookings,
		Logger:   logger,
	}
	if client := utils.GetCacheClient(); client != nil {
		availabilityService.Cache = availability.NewRedisCache(client, config.AppConfig.AvailabilityCacheTTL)
	}

	bookingService := &booking.DefaultBookingService{
		Repo:         bookings,
		Availability: availabilityService,
		Logger:       logger,
	}

	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Tokens: tokens,
	}

	doctorService := &doctor.DefaultDoctorService{Repo: doctors}

	paymentService := &payment.DefaultPaymentService{
		Gateway:  payment.NewStripeGateway(config.AppConfig.StripeKey),
		Currency: config.AppConfig.PaymentCurrency,
		Payments: payments,
		Bookings: bookings,
		Logger:   logger,
	}

	handlerBundle := &handlers.HandlerBundle{
		Tokens:   tokens,
		Admins:   userService,
		Catalog:  handlers.NewServiceCatalogHandler(availabilityService),
		Bookings: handlers.NewBookingHandler(bookingService),
		Users:    handlers.NewUserHandler(userService),
		Doctors:  handlers.NewDoctorHandler(doctorService),
		Payments: handlers.NewPaymentHandler(paymentService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	scheduler, err := cron.InitSettlementWorker(paymentService, config.AppConfig.ReconcileSchedule, logger)
	if err != nil {
		logger.Fatal("main: invalid reconcile schedule", zap.Error(err))
	}

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("vision health center server is running from port %s", config.AppConfig.AppPort)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Error("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
