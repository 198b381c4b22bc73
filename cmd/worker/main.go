package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/stayflow/stayflow-backend/internal/config"
	"github.com/stayflow/stayflow-backend/internal/db"
	"github.com/stayflow/stayflow-backend/internal/metrics"
	"github.com/stayflow/stayflow-backend/internal/minisite"
	"github.com/stayflow/stayflow-backend/internal/queue"
	"github.com/stayflow/stayflow-backend/internal/scheduler"
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

	conn, err := db.NewConnection(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	repo := db.NewRepository(conn)

	cache := redis.NewClient(cfg.Redis.URL)
	defer cache.Close()

	jobQueue := queue.NewRedisQueue(cache.Client)
	collector := metrics.NewCollector(&cfg.Metrics)

	statsService := stats.NewService(repo, cache, collector, logger)
	domainChecker := minisite.NewDomainChecker(cfg.Minisite.PlatformHost, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Metrics.PushURL != "" {
		go collector.StartRemoteWrite(ctx)
	}

	var wg sync.WaitGroup

	for i := 0; i < cfg.Worker.WorkerCount; i++ {
		worker := scheduler.NewWorker(i, jobQueue, repo, statsService, domainChecker, collector, cfg.Worker.JobTimeout, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Start(ctx)
		}()
	}

	sched := scheduler.NewScheduler(repo, jobQueue, collector, logger, cfg)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sched.Start(ctx)
	}()

	logger.Info("Worker started", zap.Int("worker_count", cfg.Worker.WorkerCount))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()
	wg.Wait()

	logger.Info("Worker exited")
}
