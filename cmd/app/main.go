package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"cafeteria/cmd"
	"cafeteria/internal/adapters/out/postgres/orderrepo"
	"cafeteria/internal/adapters/out/postgres/userrepo"
	"cafeteria/internal/adapters/out/rabbitmq"
	"cafeteria/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := cmd.LoadDotEnv(); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.LogLevel})).
		With("service", "cafeteria")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gormDB *gorm.DB
	if config.StorageBackend == cmd.StoragePostgres {
		gormDB = openDatabase(config)
	}

	publisher, closePublisher := connectPublisher(config, logger)

	app := cmd.NewCompositionRoot(config, gormDB, publisher, logger)

	e, err := app.CreateHTTPRouter()
	if err != nil {
		log.Fatalf("Failed to build HTTP router: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	err = serve(ctx, e, config, logger)

	jobManager.StopAll()
	closePublisher()
	closeDatabase(gormDB, logger)

	if err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
	logger.Info("Shutdown complete")
}

func openDatabase(config cmd.Config) *gorm.DB {
	db, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = orderrepo.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate orders: %v", err)
	}
	if err = userrepo.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate users: %v", err)
	}
	return db
}

func closeDatabase(db *gorm.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Close()
	}
	if err != nil {
		logger.Error("Failed to close database", "error", err)
	}
}

// connectPublisher returns a nil publisher when RABBITMQ_URL is empty, which disables events.
func connectPublisher(config cmd.Config, logger *slog.Logger) (ports.OrderEventPublisher, func()) {
	if config.RabbitMQURL == "" {
		logger.Info("RABBITMQ_URL is not set, order events are disabled")
		return nil, func() {}
	}

	publisher, err := rabbitmq.Dial(config.RabbitMQURL, config.RabbitMQExchange, logger)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}

	return publisher, func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error("Failed to close RabbitMQ publisher", "error", closeErr)
		}
	}
}

func serve(ctx context.Context, e *echo.Echo, config cmd.Config, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server started", "address", config.HTTPAddress(), "storage", config.StorageBackend)
		if err := e.Start(config.HTTPAddress()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
