// Package server assembles the HTTP routes of the API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "momopress/internal/docs" // Import swagger docs
	"momopress/internal/handlers"
	"momopress/internal/middleware"
	"momopress/internal/services"
)

// Deps are the services behind the routes. Metrics may be nil to leave
// /metrics unrouted.
type Deps struct {
	Users       services.UserServicer
	Budgets     services.BudgetServicer
	Checkpoints services.CheckpointServicer
	Stats       services.StatsServicer
	Inbox       services.InboxServicer
	Audit       services.AuditServicer
	Sync        services.SyncServicer

	Clock          handlers.Clock
	PipelineAPIKey string
	Metrics        http.Handler
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(d Deps) *gin.Engine {
	authHandler := handlers.NewAuthHandler(d.Users, d.Audit)
	onboardingHandler := handlers.NewOnboardingHandler(d.Budgets, d.Sync, d.Audit)
	budgetHandler := handlers.NewBudgetHandler(d.Budgets, d.Audit, d.Clock)
	syncHandler := handlers.NewSyncHandler(d.Sync, d.Checkpoints, d.Audit)
	transactionHandler := handlers.NewTransactionHandler(d.Stats, d.Clock)
	spendingHandler := handlers.NewSpendingHandler(d.Stats, d.Clock)
	pipelineHandler := handlers.NewPipelineHandler(d.Inbox)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics))
	}

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(d.PipelineAPIKey))
	pipeline.POST("/messages", pipelineHandler.StageMessages)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)
	protected.GET("/profile/audit-logs", authHandler.GetAuditLogs)
	protected.POST("/onboarding", onboardingHandler.Complete)

	budget := protected.Group("/budget")
	budget.GET("/limits", budgetHandler.GetLimits)
	budget.PUT("/limits", budgetHandler.UpdateLimits)
	budget.GET("/alerts", budgetHandler.GetAlerts)

	sync := protected.Group("/sync")
	sync.POST("", syncHandler.Sync)
	sync.GET("/status", syncHandler.Status)

	protected.GET("/transactions", transactionHandler.ListTransactions)
	protected.GET("/spending/overview", spendingHandler.GetOverview)

	return router
}
