package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stayflow/stayflow-backend/internal/config"
	"github.com/stayflow/stayflow-backend/internal/db"
	"github.com/stayflow/stayflow-backend/internal/metrics"
	"github.com/stayflow/stayflow-backend/internal/queue"
)

// Scheduler enqueues recurring tenant jobs: custom-domain verification
// and dashboard cache warming. Workers consume them from the shared
// Redis queue, so several scheduler/worker processes can coexist.
type Scheduler struct {
	repo    *db.Repository
	queue   *queue.RedisQueue
	metrics *metrics.Collector
	logger  *zap.Logger
	config  *config.Config
}

func NewScheduler(repo *db.Repository, q *queue.RedisQueue, collector *metrics.Collector, logger *zap.Logger, cfg *config.Config) *Scheduler {
	return &Scheduler{
		repo:    repo,
		queue:   q,
		metrics: collector,
		logger:  logger,
		config:  cfg,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting scheduler",
		zap.Duration("domain_check_every", s.config.Worker.DomainCheckEvery),
		zap.Duration("stats_warm_every", s.config.Worker.StatsWarmEvery),
	)

	domainTicker := time.NewTicker(s.config.Worker.DomainCheckEvery)
	statsTicker := time.NewTicker(s.config.Worker.StatsWarmEvery)
	defer domainTicker.Stop()
	defer statsTicker.Stop()

	// Warm caches shortly after boot rather than waiting a full period.
	s.enqueueStatsWarm(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping scheduler")
			return
		case <-domainTicker.C:
			s.enqueueDomainChecks(ctx)
		case <-statsTicker.C:
			s.enqueueStatsWarm(ctx)
		}
	}
}

func (s *Scheduler) enqueueDomainChecks(ctx context.Context) {
	tenants, err := s.repo.GetTenantsWithCustomDomain()
	if err != nil {
		s.logger.Error("Failed to load tenants for domain checks", zap.Error(err))
		return
	}

	for _, tenant := range tenants {
		job := &queue.Job{
			ID:        uuid.New().String(),
			Type:      queue.JobDomainVerify,
			TenantID:  tenant.ID,
			CreatedAt: time.Now(),
		}
		if err := s.queue.Push(ctx, job); err != nil {
			s.logger.Error("Failed to enqueue domain check",
				zap.String("tenant_id", tenant.ID),
				zap.Error(err),
			)
		}
	}

	s.reportQueueDepth(ctx)
	s.logger.Debug("Domain checks enqueued", zap.Int("count", len(tenants)))
}

func (s *Scheduler) enqueueStatsWarm(ctx context.Context) {
	ids, err := s.repo.GetActiveTenantIDs()
	if err != nil {
		s.logger.Error("Failed to load tenants for stats warming", zap.Error(err))
		return
	}

	for _, id := range ids {
		job := &queue.Job{
			ID:        uuid.New().String(),
			Type:      queue.JobStatsWarm,
			TenantID:  id,
			CreatedAt: time.Now(),
		}
		if err := s.queue.Push(ctx, job); err != nil {
			s.logger.Error("Failed to enqueue stats warm",
				zap.String("tenant_id", id),
				zap.Error(err),
			)
		}
	}

	s.reportQueueDepth(ctx)
	s.logger.Debug("Stats warming enqueued", zap.Int("count", len(ids)))
}

func (s *Scheduler) reportQueueDepth(ctx context.Context) {
	if depth, err := s.queue.Length(ctx); err == nil {
		s.metrics.SetQueueDepth(depth)
	}
}
