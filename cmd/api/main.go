package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ndorofeev/clubdesk_backend/internal/app"
	"github.com/ndorofeev/clubdesk_backend/internal/config"
	"github.com/ndorofeev/clubdesk_backend/internal/controller"
	"github.com/ndorofeev/clubdesk_backend/internal/repository"
	"github.com/ndorofeev/clubdesk_backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting clubdesk backend",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Не удалось подключиться к базе данных", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("База данных недоступна", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Не удалось создать мигратор", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Не удалось применить миграции", zap.Error(err))
	}
	if version, err := migrator.Version(ctx); err == nil {
		logger.Info("Миграции применены", zap.Int64("version", version))
	}

	// Репозитории
	clubRepo := repository.NewClubRepository(pool, logger)
	teamRepo := repository.NewTeamRepository(pool, logger)
	playerRepo := repository.NewPlayerRepository(pool, logger)
	activityRepo := repository.NewActivityRepository(pool, logger)
	attendanceRepo := repository.NewAttendanceRepository(pool, logger)
	paymentRepo := repository.NewPaymentRepository(pool, logger)

	// Сервисы
	clubService := service.NewClubService(clubRepo, teamRepo, playerRepo, activityRepo, attendanceRepo, paymentRepo, logger)
	scheduleService := service.NewScheduleService(activityRepo, logger)
	reportService := service.NewReportService(activityRepo, attendanceRepo, paymentRepo, playerRepo, teamRepo, logger)

	// Фоновое обновление аналитики
	scheduler := app.NewScheduler(reportService, clubRepo, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	ctrl := controller.New(clubService, scheduleService, reportService, controller.SessionConfig{
		Secret: cfg.SessionSecret,
		Issuer: cfg.SessionIssuer,
	}, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      ctrl.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP-сервер запущен", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка HTTP-сервера", zap.Error(err))
		}
	}()

	// Graceful shutdown по SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Останавливаем сервер...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
	}

	logger.Info("Сервер остановлен")
}
