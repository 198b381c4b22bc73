package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/stayflow/stayflow-backend/internal/api"
	"github.com/stayflow/stayflow-backend/internal/api/handlers"
	"github.com/stayflow/stayflow-backend/internal/config"
	"github.com/stayflow/stayflow-backend/internal/db"
	"github.com/stayflow/stayflow-backend/internal/metrics"
	"github.com/stayflow/stayflow-backend/internal/minisite"
	"github.com/stayflow/stayflow-backend/internal/stats"
	"github.com/stayflow/stayflow-backend/internal/storage/redis"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer logger.Sync()

	// Database
	conn, err := db.NewConnection(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.Database.MigrationsPath, cfg.Database.URL); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repo := db.NewRepository(conn)

	// Redis
	cache := redis.NewClient(cfg.Redis.URL)
	defer cache.Close()

	// Metrics
	collector := metrics.NewCollector(&cfg.Metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Metrics.PushURL != "" {
		go collector.StartRemoteWrite(ctx)
	}

	// Services
	statsService := stats.NewService(repo, cache, collector, logger)
	domainChecker := minisite.NewDomainChecker(cfg.Minisite.PlatformHost, logger)

	handler := handlers.NewHandler(repo, statsService, domainChecker, collector, cfg, logger)
	server := api.NewServer(cfg, repo, handler, collector, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("API server started", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
