package stats

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stayflow/stayflow-backend/internal/db"
	"github.com/stayflow/stayflow-backend/internal/metrics"
	"github.com/stayflow/stayflow-backend/internal/storage/redis"
)

// Service loads a tenant's data, runs Compute and caches the result.
// The clock is injected so handlers and the worker share deterministic
// behavior with the pure core.
type Service struct {
	repo    *db.Repository
	cache   *redis.Client
	metrics *metrics.Collector
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(repo *db.Repository, cache *redis.Client, collector *metrics.Collector, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		metrics: collector,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the reference clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Dashboard returns the tenant's dashboard statistics, from cache unless
// refresh is set or the cache misses. Stale-by-at-most-5-minutes is
// acceptable at the presentation layer; recomputation always supersedes.
func (s *Service) Dashboard(ctx context.Context, tenantID string, refresh bool) (*DashboardStats, error) {
	if !refresh && s.cache != nil {
		var cached DashboardStats
		if err := s.cache.GetCachedDashboardStats(ctx, tenantID, &cached); err == nil {
			return &cached, nil
		}
	}

	return s.Recompute(ctx, tenantID)
}

// Invalidate drops the cached stats so the next dashboard read recomputes.
// Called after any property or reservation mutation.
func (s *Service) Invalidate(ctx context.Context, tenantID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDashboardStats(ctx, tenantID); err != nil {
		s.logger.Warn("Failed to invalidate dashboard stats cache",
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
	}
}

// Recompute loads the tenant's collections, runs the aggregation and
// refreshes cache and metrics.
func (s *Service) Recompute(ctx context.Context, tenantID string) (*DashboardStats, error) {
	properties, err := s.repo.GetPropertiesByTenant(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}

	reservations, err := s.repo.GetAllReservationsByTenant(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	result := Compute(properties, reservations, s.now())

	if s.cache != nil {
		if err := s.cache.CacheDashboardStats(ctx, tenantID, result); err != nil {
			s.logger.Warn("Failed to cache dashboard stats",
				zap.String("tenant_id", tenantID),
				zap.Error(err),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordDashboardStats(tenantID, metrics.DashboardSample{
			TotalProperties:     result.TotalProperties,
			ActiveProperties:    result.ActiveProperties,
			TotalReservations:   result.TotalReservations,
			PendingReservations: result.PendingReservations,
			TotalRevenue:        result.TotalRevenue,
			MonthlyRevenue:      result.MonthlyRevenue,
			OccupancyRate:       result.OccupancyRate,
		})
	}

	return &result, nil
}
