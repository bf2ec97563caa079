package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"glucolog/internal/config"
	"glucolog/internal/database"
	"glucolog/internal/logger"
	"glucolog/internal/repository"
	"glucolog/internal/server"
	"glucolog/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	readings := repository.NewReadingRepository(db)
	doses := repository.NewDoseRepository(db)
	meals := repository.NewMealRepository(db)
	bands := repository.NewCorrectionBandRepository(db)
	schedule := repository.NewScheduleRepository(db)
	types := repository.NewInsulinTypeRepository(db)
	users := repository.NewUserRepository(db)

	glucose := services.NewGlucoseService(readings)
	insulin := services.NewInsulinService(doses, types)
	mealSvc := services.NewMealService(meals)
	dosing := services.NewDosingService(bands, schedule, types)
	analytics := services.NewAnalyticsService(readings)
	activity := services.NewActivityService(readings, doses, meals)
	dashboard := services.NewDashboardService(activity, dosing, readings)
	export := services.NewExportService()

	srv := server.New(users, glucose, insulin, mealSvc, dosing, analytics, activity, dashboard, export)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
