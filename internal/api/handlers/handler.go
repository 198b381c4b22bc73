package handlers

import (
	"go.uber.org/zap"

	"github.com/stayflow/stayflow-backend/internal/config"
	"github.com/stayflow/stayflow-backend/internal/db"
	"github.com/stayflow/stayflow-backend/internal/metrics"
	"github.com/stayflow/stayflow-backend/internal/minisite"
	"github.com/stayflow/stayflow-backend/internal/stats"
)

type Handler struct {
	repo    *db.Repository
	stats   *stats.Service
	domains *minisite.DomainChecker
	metrics *metrics.Collector
	config  *config.Config
	logger  *zap.Logger
}

func NewHandler(repo *db.Repository, statsService *stats.Service, domains *minisite.DomainChecker, collector *metrics.Collector, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		repo:    repo,
		stats:   statsService,
		domains: domains,
		metrics: collector,
		config:  cfg,
		logger:  logger,
	}
}
