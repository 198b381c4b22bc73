package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/stayflow/stayflow-backend/internal/config"
)

type Collector struct {
	config *config.MetricsConfig

	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Dashboard stats, one gauge per field we chart
	propertiesTotal     *prometheus.GaugeVec
	propertiesActive    *prometheus.GaugeVec
	reservationsTotal   *prometheus.GaugeVec
	reservationsPending *prometheus.GaugeVec
	revenueTotal        *prometheus.GaugeVec
	revenueMonthly      *prometheus.GaugeVec
	occupancyRate       *prometheus.GaugeVec

	// Mini-site domain checks
	domainCheckSuccess *prometheus.GaugeVec
	domainDaysToExpiry *prometheus.GaugeVec
	domainChecksTotal  *prometheus.CounterVec

	// Worker
	jobsProcessed *prometheus.CounterVec
	jobDuration   *prometheus.HistogramVec
	queueDepth    prometheus.Gauge
}

func NewCollector(cfg *config.MetricsConfig) *Collector {
	return &Collector{
		config: cfg,

		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stayflow_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stayflow_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		propertiesTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stayflow_properties_total",
			Help: "Registered properties per tenant",
		}, []string{"tenant_id"}),

		propertiesActive: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stayflow_properties_active",
			Help: "Bookable properties per tenant",
		}, []string{"tenant_id"}),

		reservationsTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stayflow_reservations_total",
			Help: "Reservations per tenant",
		}, []string{"tenant_id"}),

		reservationsPending: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stayflow_reservations_pending",
			Help: "Pending reservations per tenant",
		}, []string{"tenant_id"}),

		revenueTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stayflow_revenue_total",
			Help: "Confirmed revenue per tenant, currency units",
		}, []string{"tenant_id"}),

		revenueMonthly: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stayflow_revenue_monthly",
			Help: "Current calendar month confirmed revenue per tenant",
		}, []string{"tenant_id"}),

		occupancyRate: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stayflow_occupancy_rate",
			Help: "Occupancy rate percentage per tenant",
		}, []string{"tenant_id"}),

		domainCheckSuccess: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stayflow_domain_check_success",
			Help: "Whether the latest mini-site domain check verified (1) or failed (0)",
		}, []string{"tenant_id", "domain"}),

		domainDaysToExpiry: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stayflow_domain_days_to_expiry",
			Help: "Days until the mini-site custom domain registration expires",
		}, []string{"tenant_id", "domain"}),

		domainChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stayflow_domain_checks_total",
			Help: "Domain verification attempts by result",
		}, []string{"tenant_id", "result"}),

		jobsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stayflow_worker_jobs_total",
			Help: "Background jobs processed by type and result",
		}, []string{"type", "result"}),

		jobDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stayflow_worker_job_duration_seconds",
			Help:    "Background job processing time",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),

		queueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stayflow_queue_depth",
			Help: "Jobs waiting in the tenant job queue",
		}),
	}
}

func (c *Collector) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

type DashboardSample struct {
	TotalProperties     int
	ActiveProperties    int
	TotalReservations   int
	PendingReservations int
	TotalRevenue        float64
	MonthlyRevenue      float64
	OccupancyRate       float64
}

func (c *Collector) RecordDashboardStats(tenantID string, s DashboardSample) {
	c.propertiesTotal.WithLabelValues(tenantID).Set(float64(s.TotalProperties))
	c.propertiesActive.WithLabelValues(tenantID).Set(float64(s.ActiveProperties))
	c.reservationsTotal.WithLabelValues(tenantID).Set(float64(s.TotalReservations))
	c.reservationsPending.WithLabelValues(tenantID).Set(float64(s.PendingReservations))
	c.revenueTotal.WithLabelValues(tenantID).Set(s.TotalRevenue)
	c.revenueMonthly.WithLabelValues(tenantID).Set(s.MonthlyRevenue)
	c.occupancyRate.WithLabelValues(tenantID).Set(s.OccupancyRate)
}

func (c *Collector) RecordDomainCheck(tenantID, domain string, verified bool, daysToExpiry int) {
	result := "failed"
	success := 0.0
	if verified {
		result = "verified"
		success = 1.0
	}
	c.domainCheckSuccess.WithLabelValues(tenantID, domain).Set(success)
	c.domainChecksTotal.WithLabelValues(tenantID, result).Inc()
	if daysToExpiry > 0 {
		c.domainDaysToExpiry.WithLabelValues(tenantID, domain).Set(float64(daysToExpiry))
	}
}

func (c *Collector) RecordJob(jobType string, err error, duration time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.jobsProcessed.WithLabelValues(jobType, result).Inc()
	c.jobDuration.WithLabelValues(jobType).Observe(duration.Seconds())
}

func (c *Collector) SetQueueDepth(n int64) {
	c.queueDepth.Set(float64(n))
}
