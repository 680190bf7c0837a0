package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/lanvy-atelier/dress-rental/internal/adapter/gateway"
	"github.com/lanvy-atelier/dress-rental/internal/adapter/handler"
	"github.com/lanvy-atelier/dress-rental/internal/adapter/repository/postgres"
	"github.com/lanvy-atelier/dress-rental/internal/config"
	"github.com/lanvy-atelier/dress-rental/internal/core/services"
	"github.com/lanvy-atelier/dress-rental/internal/platform/clock"
	"github.com/lanvy-atelier/dress-rental/internal/platform/database"
	"github.com/lanvy-atelier/dress-rental/internal/platform/logging"
)

func main() {
	logger := logging.New()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using OS environment")
	}

	cfg := config.Load()

	db, err := database.NewPostgresDB(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to db after retries", "error", err)
		os.Exit(1)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	logger.Info("redis connected", "addr", cfg.RedisAddr)

	instanceRepo := postgres.NewInstanceRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	paymentGateway := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayAPIKey)
	clk := clock.NewSystem()

	reservationSvc := services.NewReservationService(instanceRepo, redisClient, clk, logger)
	checkoutSvc := services.NewCheckoutService(instanceRepo, orderRepo, paymentGateway, reservationSvc, clk, logger)
	paymentSvc := services.NewPaymentService(orderRepo, paymentGateway, redisClient, logger)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()

	// Proactive only: checkout sweeps on entry regardless of this timer.
	go reservationSvc.RunBackgroundSweep(sweepCtx, cfg.SweepInterval)

	router := handler.NewRouter(
		handler.NewReservationHandler(reservationSvc),
		handler.NewCheckoutHandler(checkoutSvc),
		handler.NewPaymentHandler(paymentSvc),
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server startup failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exiting")
}
