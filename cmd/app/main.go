package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	pgjobrepo "dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/core/domain/model/channel"
	"dispatch/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	gormDB := openDatabase(configs, logger)

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		logger.Error("Failed to build composition root", "error", err)
		os.Exit(1)
	}

	run(root, configs, logger)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, using environment and defaults")
	}

	return cmd.Config{
		HTTPPort:     envOrDefault("HTTP_PORT", "3000"),
		DBHost:       envOrDefault("DB_HOST", ""),
		DBPort:       envOrDefault("DB_PORT", "5432"),
		DBUser:       envOrDefault("DB_USER", "postgres"),
		DBPassword:   envOrDefault("DB_PASSWORD", ""),
		DBName:       envOrDefault("DB_NAME", "dispatch"),
		DBSslMode:    envOrDefault("DB_SSLMODE", "disable"),
		JobInterval:  envDuration(logger, "JOB_INTERVAL", 60*time.Second),
		QRDelay:      envDuration(logger, "WHATSAPP_QR_DELAY", 5*time.Second),
		ConnectDelay: envDuration(logger, "WHATSAPP_CONNECT_DELAY", 30*time.Second),
	}
}

func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(logger *slog.Logger, key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		logger.Warn("Invalid duration in environment, using default",
			"key", key, "value", raw, "default", fallback.String())
		return fallback
	}
	return value
}

// openDatabase connects to postgres and runs migrations. A missing or
// unreachable database degrades to the in-memory store instead of refusing
// to boot; jobs then do not survive restarts.
func openDatabase(configs cmd.Config, logger *slog.Logger) *gorm.DB {
	if configs.DBHost == "" {
		logger.Info("DB_HOST not set, using in-memory job store")
		return nil
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Warn("Database connection failed, falling back to in-memory job store",
			"error", err)
		return nil
	}

	if err := pgjobrepo.Migrate(db); err != nil {
		logger.Warn("Database migration failed, falling back to in-memory job store",
			"error", err)
		return nil
	}

	logger.Info("Connected to postgres", "host", configs.DBHost, "db", configs.DBName)
	return db
}

func run(root cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := root.Registry()
	simulator := root.Simulator()

	// Every channel transition goes out to all online couriers.
	simulator.Notify(func(state channel.State) {
		registry.Broadcast(ports.EventWhatsAppStatus, ports.NewStatusPayload(state))
	})
	simulator.Start()
	defer simulator.Stop()

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	root.CreateHTTPServer().Routes(e)
	e.GET("/ws", root.CreateSessionGateway().Handle)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("Dispatch backend listening", "addr", addr, "ws_path", "/ws")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
