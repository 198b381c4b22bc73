package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stayflow/stayflow-backend/internal/db"
	"github.com/stayflow/stayflow-backend/internal/metrics"
	"github.com/stayflow/stayflow-backend/internal/minisite"
	"github.com/stayflow/stayflow-backend/internal/queue"
	"github.com/stayflow/stayflow-backend/internal/stats"
)

type Worker struct {
	id         int
	queue      *queue.RedisQueue
	repo       *db.Repository
	stats      *stats.Service
	domains    *minisite.DomainChecker
	metrics    *metrics.Collector
	jobTimeout time.Duration
	logger     *zap.Logger
}

func NewWorker(id int, q *queue.RedisQueue, repo *db.Repository, statsService *stats.Service, domains *minisite.DomainChecker, collector *metrics.Collector, jobTimeout time.Duration, logger *zap.Logger) *Worker {
	return &Worker{
		id:         id,
		queue:      q,
		repo:       repo,
		stats:      statsService,
		domains:    domains,
		metrics:    collector,
		jobTimeout: jobTimeout,
		logger:     logger.With(zap.Int("worker_id", id)),
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Worker stopped")
			return
		default:
		}

		job, err := w.queue.Pop(ctx, 5*time.Second)
		if err != nil {
			if err != queue.ErrTimeout && ctx.Err() == nil {
				w.logger.Error("Failed to pop job", zap.Error(err))
			}
			continue
		}

		w.processJob(ctx, job)
	}
}

func (w *Worker) processJob(ctx context.Context, job *queue.Job) {
	start := time.Now()

	w.logger.Debug("Processing job",
		zap.String("job_id", job.ID),
		zap.String("job_type", string(job.Type)),
		zap.String("tenant_id", job.TenantID),
	)

	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	var err error
	switch job.Type {
	case queue.JobDomainVerify:
		err = w.verifyDomain(jobCtx, job.TenantID)
	case queue.JobStatsWarm:
		_, err = w.stats.Recompute(jobCtx, job.TenantID)
	default:
		w.logger.Error("Unknown job type", zap.String("job_type", string(job.Type)))
		return
	}

	w.metrics.RecordJob(string(job.Type), err, time.Since(start))

	if err != nil {
		w.logger.Error("Job failed",
			zap.String("job_id", job.ID),
			zap.String("job_type", string(job.Type)),
			zap.String("tenant_id", job.TenantID),
			zap.Error(err),
		)
		return
	}

	w.logger.Debug("Job completed",
		zap.String("job_id", job.ID),
		zap.Duration("duration", time.Since(start)),
	)
}

func (w *Worker) verifyDomain(ctx context.Context, tenantID string) error {
	tenant, err := w.repo.GetTenant(tenantID)
	if err != nil {
		return err
	}
	if tenant.CustomDomain == "" {
		return nil
	}

	result := w.domains.Check(ctx, tenant.CustomDomain)

	status := db.DomainFailed
	if result.Verified {
		status = db.DomainVerified
	}

	w.metrics.RecordDomainCheck(tenantID, tenant.CustomDomain, result.Verified, result.DaysToExpiry)

	return w.repo.UpdateTenantDomain(tenantID, tenant.CustomDomain, status)
}
