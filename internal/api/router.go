package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stayflow/stayflow-backend/internal/api/handlers"
	"github.com/stayflow/stayflow-backend/internal/api/middleware"
	"github.com/stayflow/stayflow-backend/internal/config"
	"github.com/stayflow/stayflow-backend/internal/db"
	"github.com/stayflow/stayflow-backend/internal/metrics"
	"github.com/stayflow/stayflow-backend/pkg/sso"
	"go.uber.org/zap"
)

type Server struct {
	Config *config.Config
	Router *gin.Engine
}

func NewServer(cfg *config.Config, repo *db.Repository, handler *handlers.Handler, collector *metrics.Collector, logger *zap.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	router.Use(middleware.Logger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics(collector))

	server := &Server{
		Config: cfg,
		Router: router,
	}

	server.setupRoutes(repo, handler)
	return server
}

func (s *Server) setupRoutes(repo *db.Repository, h *handlers.Handler) {
	s.Router.GET("/health", h.Health)
	s.Router.GET("/ready", h.Ready)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes
	auth := s.Router.Group("/api/v1/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.RefreshToken)
	}

	// Public mini-site routes
	site := s.Router.Group("/api/v1/site")
	site.Use(middleware.RateLimit(s.Config.Minisite.PublicRateLimit, s.Config.Minisite.PublicRateBurst))
	{
		site.GET("/:slug", h.GetSite)
		site.GET("/:slug/properties", h.ListSiteProperties)
		site.GET("/:slug/properties/:id", h.GetSiteProperty)
	}

	// API routes (protected)
	api := s.Router.Group("/api/v1")
	api.Use(middleware.AuthRequired(s.Config.Auth.JWTSecret, sso.NewClient(s.Config.SSO)))
	api.Use(middleware.TenantContext(repo))

	{
		api.GET("/properties", h.ListProperties)
		api.POST("/properties", h.CreateProperty)
		api.GET("/properties/:id", h.GetProperty)
		api.PUT("/properties/:id", h.UpdateProperty)
		api.DELETE("/properties/:id", h.DeleteProperty)
	}

	{
		api.GET("/reservations", h.ListReservations)
		api.POST("/reservations", h.CreateReservation)
		api.POST("/reservations/import", h.ImportReservations)
		api.GET("/reservations/:id", h.GetReservation)
		api.PUT("/reservations/:id", h.UpdateReservation)
		api.DELETE("/reservations/:id", h.DeleteReservation)
	}

	api.GET("/dashboard/stats", h.GetDashboardStats)

	{
		api.PUT("/site/domain", h.SetCustomDomain)
		api.POST("/site/domain/verify", h.VerifyCustomDomain)
	}
}
