package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"homevista/internal/config"
	"homevista/internal/database"
	"homevista/internal/logger"
	"homevista/internal/server"
	"homevista/internal/storage"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "mongo":
		log.Info("Using MongoDB store", zap.String("database", cfg.Mongo.Database))
		return storage.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	case "postgres":
		log.Info("Using Postgres store", zap.String("database", cfg.Database.Database))
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		log.Info("Database health check", zap.Any("health", database.Health(db)))
		if err := database.RunMigrations(db, "migrations", log); err != nil {
			db.Close()
			return nil, err
		}
		return storage.NewPostgresStore(db), nil
	default:
		log.Info("Using in-memory store")
		return storage.NewMemoryStore(), nil
	}
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting homevista API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openStore(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}

	if cfg.Storage.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := storage.Seed(ctx, store, log)
		cancel()
		if err != nil {
			log.Fatal("Failed to seed store", zap.Error(err))
		}
	}

	// Redis is optional: without it the server runs unthrottled.
	var redisClient *redis.Client
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		client.Close()
	} else {
		redisClient = client
	}
	pingCancel()

	// Create server
	srv := server.NewServer(cfg, log, store, redisClient)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
