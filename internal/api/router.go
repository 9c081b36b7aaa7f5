// Package api wires the HTTP surface: middleware, handlers and routes.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goal-forecast/internal/api/handlers"
	"goal-forecast/internal/api/middleware"
	"goal-forecast/internal/config"
	"goal-forecast/internal/insight"
	applog "goal-forecast/internal/log"
	"goal-forecast/internal/projection"
	"goal-forecast/internal/store"
)

// Deps are the long-lived collaborators shared by every handler.
type Deps struct {
	Config  *config.Config
	State   *store.State
	Engine  *projection.Engine
	Insight *insight.Client
	Logger  *applog.Logger
}

// NewRouter builds the gin engine with middleware and all /api/v1 routes.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = applog.Discard()
	}
	if d.Config == nil {
		d.Config = config.Default()
	}
	if d.Engine == nil {
		d.Engine = projection.NewEngine(d.Config.Simulation.Workers, d.Logger)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(d.Config.Server.CORSOrigins))
	router.Use(middleware.Logger(d.Logger))
	router.Use(middleware.ErrorHandler(d.Logger))

	projectionHandler := handlers.NewProjectionHandler(d.Engine, d.Config.Simulation, d.Logger)
	goalHandler := handlers.NewGoalHandler(d.State, d.Engine, d.Insight, d.Config.Simulation, d.Logger)
	riskHandler := handlers.NewRiskHandler()
	ledgerHandler := handlers.NewLedgerHandler(d.State)

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", health)

	api := router.Group("/api/v1")
	{
		api.GET("/health", health)

		api.POST("/future-value", projectionHandler.FutureValue)
		api.POST("/simulate", projectionHandler.Simulate)
		api.POST("/project", projectionHandler.Project)
		api.POST("/project/compare", projectionHandler.CompareProjections)

		api.GET("/risk-profiles", riskHandler.ListRiskProfiles)

		api.GET("/goals", goalHandler.ListGoals)
		api.POST("/goals", goalHandler.CreateGoal)
		api.GET("/goals/rank", goalHandler.RankGoals)
		api.GET("/goals/:id", goalHandler.GetGoal)
		api.POST("/goals/:id/contributions", goalHandler.Contribute)
		api.POST("/goals/:id/plan", goalHandler.GeneratePlan)
		api.POST("/goals/:id/simulate", goalHandler.SimulateGoal)

		api.GET("/transactions", ledgerHandler.ListTransactions)
		api.GET("/budgets", ledgerHandler.ListBudgets)
		api.POST("/budgets", ledgerHandler.CreateBudget)
		api.GET("/progress", ledgerHandler.GetProgress)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "route not found"}})
	})
	return router
}
