package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goal-forecast/internal/analysis"
	"goal-forecast/internal/api/models"
	"goal-forecast/internal/config"
	"goal-forecast/internal/insight"
	applog "goal-forecast/internal/log"
	"goal-forecast/internal/model"
	"goal-forecast/internal/projection"
	"goal-forecast/internal/store"
)

// GoalHandler handles goal requests against the shared goal store
type GoalHandler struct {
	state    *store.State
	engine   *projection.Engine
	insight  *insight.Client
	defaults config.SimulationConfig
	logger   *applog.Logger
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(state *store.State, engine *projection.Engine, ai *insight.Client, defaults config.SimulationConfig, logger *applog.Logger) *GoalHandler {
	if logger == nil {
		logger = applog.Discard()
	}
	return &GoalHandler{
		state:    state,
		engine:   engine,
		insight:  ai,
		defaults: defaults,
		logger:   logger,
	}
}

// ListGoals handles GET /api/v1/goals
func (h *GoalHandler) ListGoals(c *gin.Context) {
	now := h.state.Now()
	goals := h.state.Goals()
	views := make([]models.GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, goalView(g, now))
	}
	c.JSON(http.StatusOK, gin.H{"goals": views})
}

// GetGoal handles GET /api/v1/goals/:id
func (h *GoalHandler) GetGoal(c *gin.Context) {
	g, err := h.state.Goal(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, goalView(g, h.state.Now()))
}

// CreateGoal handles POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	date, err := model.ParseDate(req.TargetDate)
	if err != nil {
		respondDomainError(c, &model.InvalidInputError{Field: "target_date", Reason: err.Error()})
		return
	}
	var profile model.RiskProfile
	if req.RiskProfile != "" {
		if profile, err = model.ParseRiskProfile(req.RiskProfile); err != nil {
			respondDomainError(c, &model.InvalidInputError{Field: "risk_profile", Reason: err.Error()})
			return
		}
	}

	g, err := h.state.AddGoal(store.NewGoal{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   date,
		IconName:     req.IconName,
		RiskProfile:  profile,
	})
	if err != nil {
		respondDomainError(c, &model.InvalidInputError{Field: "goal", Reason: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, goalView(g, h.state.Now()))
}

// Contribute handles POST /api/v1/goals/:id/contributions
func (h *GoalHandler) Contribute(c *gin.Context) {
	var req models.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	g, err := h.state.ApplyContribution(c.Param("id"), req.Amount)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.logger.InfoContext(c.Request.Context(), "contribution applied",
		applog.FieldOperation, applog.OpContribute,
		applog.FieldGoalID, g.ID,
		applog.FieldAmount, req.Amount,
	)
	c.JSON(http.StatusOK, goalView(g, h.state.Now()))
}

// GeneratePlan handles POST /api/v1/goals/:id/plan
func (h *GoalHandler) GeneratePlan(c *gin.Context) {
	id := c.Param("id")
	g, err := h.state.Goal(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	plan, fallback, err := h.insight.PlanOrFallback(c.Request.Context(), g)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	g, err = h.state.SetPlan(id, plan)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PlanResponse{
		Goal:     goalView(g, h.state.Now()),
		Plan:     plan,
		Fallback: fallback,
	})
}

// SimulateGoal handles POST /api/v1/goals/:id/simulate
func (h *GoalHandler) SimulateGoal(c *gin.Context) {
	var req models.GoalSimulateRequest
	// An empty body is fine; every field has a default.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	g, err := h.state.Goal(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	profile := req.RiskProfile
	if profile == "" {
		profile = string(g.RiskProfile)
	}
	if profile == "" {
		profile = string(h.defaults.RiskProfile)
	}
	a, err := resolveAssumptions(profile, nil, nil, h.defaults)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	now := h.state.Now()
	contribution := g.PlannedContribution(math.Max(0, g.RequiredMonthlySaving(now)))
	if req.MonthlyContribution != nil {
		contribution = *req.MonthlyContribution
	}
	in := g.ProjectionInput(now, a, contribution, pickInt(req.NumSimulations, h.defaults.NumSimulations))
	seed := resolveSeed(req.Seed, h.defaults.Seed)

	rs, err := h.engine.Simulate(c.Request.Context(), in, seed)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	target := g.TargetAmount
	sim := buildSimulateResponse(in, seed, rs, pickInt(req.HistogramBins, h.defaults.HistogramBins), &target, false)

	inflation := h.defaults.AnnualInflation
	if req.AnnualInflation != nil {
		inflation = *req.AnnualInflation
	}
	points := projection.ProjectPath(projection.ProjectionSettings{
		CurrentAmount:       g.CurrentAmount,
		TargetAmount:        g.TargetAmount,
		Months:              in.Months,
		MonthlyContribution: contribution,
		AnnualReturn:        a.AnnualMeanReturn,
		AnnualInflation:     inflation,
	})

	resp := models.GoalSimulateResponse{
		Goal:                goalView(g, now),
		MonthlyContribution: contribution,
		Simulation:          sim,
		Projection:          points,
	}
	if req.Explain {
		resp.Commentary = h.insight.ExplainForecast(c.Request.Context(), g, contribution, *sim.Summary)
	}
	h.logger.InfoContext(c.Request.Context(), "goal simulation finished",
		applog.NewFields().WithOperation(applog.OpSimulate).WithGoal(g.ID).ToSlice()...,
	)
	c.JSON(http.StatusOK, resp)
}

// RankGoals handles GET /api/v1/goals/rank
func (h *GoalHandler) RankGoals(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ranked, err := analysis.RankGoals(c.Request.Context(), h.state.Goals(), h.engine, analysis.RankOptions{
		Now:            h.state.Now(),
		Seed:           resolveSeed(req.Seed, h.defaults.Seed),
		NumSimulations: pickInt(req.NumSimulations, h.defaults.NumSimulations),
		DefaultProfile: h.defaults.RiskProfile,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if req.Limit > 0 && req.Limit < len(ranked) {
		ranked = ranked[:req.Limit]
	}

	rankings := make([]models.Ranking, 0, len(ranked))
	for i, r := range ranked {
		rankings = append(rankings, models.Ranking{
			Rank:                i + 1,
			GoalID:              r.Goal.ID,
			Name:                r.Goal.Name,
			MonthlyContribution: r.MonthlyContribution,
			Assumptions:         r.Assumptions,
			Summary:             r.Summary,
		})
	}
	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings})
}

func goalView(g model.FinancialGoal, now time.Time) models.GoalView {
	return models.GoalView{
		FinancialGoal:         g,
		Status:                g.Status(),
		Progress:              g.Progress(),
		MonthsRemaining:       g.MonthsRemaining(now),
		RequiredMonthlySaving: math.Max(0, g.RequiredMonthlySaving(now)),
	}
}
