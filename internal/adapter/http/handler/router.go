package handler

import (
	"github.com/chicsouqsa-collab/Spay-sub002/internal/adapter/http/middleware"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	IngestSvc      ports.IngestService
	AuthSvc        ports.AuthService
	TokenSvc       ports.TokenService
	LedgerRepo     ports.LedgerRepository
	JobQueue       ports.JobQueue
	HealthCheckers []ports.HealthChecker
	MetricsReg     *prometheus.Registry // nil = /metrics disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	if deps.MetricsReg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.MetricsReg, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Webhook intake (signature-authenticated by the codec) ---
	webhookHandler := NewWebhookHandler(deps.IngestSvc)
	v1.POST("/webhooks/stripe", webhookHandler.Receive)

	// --- Operator surface ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	ledgerHandler := NewLedgerHandler(deps.LedgerRepo, deps.JobQueue)

	ops := v1.Group("/ops")
	{
		ops.POST("/token", authHandler.IssueToken)

		jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
		ops.GET("/events", jwtAuth, ledgerHandler.ListEvents)
		ops.GET("/events/:external_id", jwtAuth, ledgerHandler.GetEvent)
		ops.GET("/jobs", jwtAuth, ledgerHandler.ListJobs)
	}

	return r
}
