package handlers

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goal-forecast/internal/analysis"
	"goal-forecast/internal/api/models"
	"goal-forecast/internal/config"
	applog "goal-forecast/internal/log"
	"goal-forecast/internal/model"
	"goal-forecast/internal/projection"
)

// ProjectionHandler handles stateless projection requests
type ProjectionHandler struct {
	engine   *projection.Engine
	defaults config.SimulationConfig
	logger   *applog.Logger
}

// NewProjectionHandler creates a new projection handler
func NewProjectionHandler(engine *projection.Engine, defaults config.SimulationConfig, logger *applog.Logger) *ProjectionHandler {
	if logger == nil {
		logger = applog.Discard()
	}
	return &ProjectionHandler{engine: engine, defaults: defaults, logger: logger}
}

// FutureValue handles POST /api/v1/future-value
func (h *ProjectionHandler) FutureValue(c *gin.Context) {
	var req models.FutureValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Months < 0 || req.Months > model.MaxMonths {
		respondDomainError(c, &model.InvalidInputError{Field: "months", Reason: fmt.Sprintf("must be in 0..%d", model.MaxMonths)})
		return
	}

	fv := projection.DeterministicFutureValue(req.Principal, req.MonthlyContribution, req.Months, req.AnnualRate)
	contributed := req.Principal + req.MonthlyContribution*float64(req.Months)
	if !finite(fv, contributed, fv-contributed) {
		respondDomainError(c, errOverflow("future_value"))
		return
	}
	c.JSON(http.StatusOK, models.FutureValueResponse{
		FutureValue:      fv,
		TotalContributed: contributed,
		Growth:           fv - contributed,
	})
}

// Simulate handles POST /api/v1/simulate
func (h *ProjectionHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	a, err := resolveAssumptions(req.RiskProfile, req.AnnualMeanReturn, req.AnnualVolatility, h.defaults)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	in := model.ProjectionInput{
		InitialAmount:       req.InitialAmount,
		MonthlyContribution: req.MonthlyContribution,
		Months:              req.Months,
		AnnualMeanReturn:    a.AnnualMeanReturn,
		AnnualVolatility:    a.AnnualVolatility,
		NumSimulations:      pickInt(req.NumSimulations, h.defaults.NumSimulations),
	}
	seed := resolveSeed(req.Seed, h.defaults.Seed)

	rs, err := h.engine.Simulate(c.Request.Context(), in, seed)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.logger.InfoContext(c.Request.Context(), "simulation finished",
		applog.FieldOperation, applog.OpSimulate,
		applog.FieldSimulations, in.NumSimulations,
		applog.FieldMonths, in.Months,
		applog.FieldSeed, seed,
	)

	var target *float64
	if req.Target > 0 {
		target = &req.Target
	}
	c.JSON(http.StatusOK, buildSimulateResponse(in, seed, rs, pickInt(req.HistogramBins, h.defaults.HistogramBins), target, req.IncludeOutcomes))
}

// Project handles POST /api/v1/project
func (h *ProjectionHandler) Project(c *gin.Context) {
	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	s := h.settings(req)
	points := projection.ProjectPath(s)
	final := projection.FinalProjectedValue(s, points)
	if !pointsFinite(points) || !finite(final) {
		respondDomainError(c, errOverflow("projection"))
		return
	}
	c.JSON(http.StatusOK, models.ProjectResponse{
		Points:     points,
		FinalValue: final,
		OnTrack:    final >= s.TargetAmount,
	})
}

// CompareProjections handles POST /api/v1/project/compare
func (h *ProjectionHandler) CompareProjections(c *gin.Context) {
	var req models.CompareProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	for i, sc := range req.Scenarios {
		if sc.Months != nil && (*sc.Months < 0 || *sc.Months > model.MaxMonths) {
			respondDomainError(c, &model.InvalidInputError{
				Field:  fmt.Sprintf("scenarios[%d].months", i),
				Reason: fmt.Sprintf("must be in 0..%d", model.MaxMonths),
			})
			return
		}
	}
	results := projection.CompareScenarios(h.settings(req.Base), req.Scenarios)
	for i, r := range results {
		if !finite(r.FinalValue, r.FinalInflationAdjusted, r.Shortfall) {
			respondDomainError(c, errOverflow(fmt.Sprintf("scenarios[%d]", i)))
			return
		}
	}
	c.JSON(http.StatusOK, models.CompareProjectionResponse{Comparison: results})
}

func (h *ProjectionHandler) settings(req models.ProjectRequest) projection.ProjectionSettings {
	inflation := h.defaults.AnnualInflation
	if req.AnnualInflation != nil {
		inflation = *req.AnnualInflation
	}
	return projection.ProjectionSettings{
		CurrentAmount:       req.CurrentAmount,
		TargetAmount:        req.TargetAmount,
		Months:              req.Months,
		MonthlyContribution: req.MonthlyContribution,
		AnnualReturn:        req.AnnualReturn,
		AnnualInflation:     inflation,
	}
}

// resolveAssumptions picks market parameters: explicit values win over the named
// risk profile, which wins over the configured defaults.
func resolveAssumptions(profile string, mean, vol *float64, defaults config.SimulationConfig) (model.Assumptions, error) {
	a := defaults.Assumptions()
	if profile != "" {
		p, err := model.ParseRiskProfile(profile)
		if err != nil {
			return model.Assumptions{}, &model.InvalidInputError{Field: "risk_profile", Reason: err.Error()}
		}
		a = p.Assumptions()
	}
	if mean != nil {
		a.AnnualMeanReturn = *mean
	}
	if vol != nil {
		a.AnnualVolatility = *vol
	}
	return a, nil
}

// resolveSeed prefers the request seed, then the configured one. With neither, the run is
// seeded from the clock; the seed is echoed in the response so it can be replayed.
func resolveSeed(req *int64, configured int64) int64 {
	if req != nil {
		return *req
	}
	if configured != 0 {
		return configured
	}
	return time.Now().UnixNano()
}

// finite reports whether every value can be encoded as JSON.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func pointsFinite(points []projection.ProjectionPoint) bool {
	for _, p := range points {
		if !finite(p.ProjectedValue, p.Target, p.InflationAdjustedTarget) {
			return false
		}
	}
	return true
}

func errOverflow(field string) *model.InvalidInputError {
	return &model.InvalidInputError{Field: field, Reason: "result overflows; reduce the rate, horizon or amounts"}
}

func pickInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}

func buildSimulateResponse(in model.ProjectionInput, seed int64, rs *projection.ResultSet, bins int, target *float64, includeOutcomes bool) models.SimulateResponse {
	resp := models.SimulateResponse{
		Seed:   seed,
		Input:  in,
		Months: rs.Months(),
		Bands: models.Bands{
			MedianPath: rs.MedianPath,
			P10Path:    rs.P10Path,
			P90Path:    rs.P90Path,
		},
		Histogram:          projection.Histogram(rs.FinalOutcomes, bins),
		DeterministicFinal: projection.DeterministicFutureValue(in.InitialAmount, in.MonthlyContribution, in.Months, in.AnnualMeanReturn),
	}
	if includeOutcomes {
		resp.Bands.FinalOutcomes = rs.FinalOutcomes
	}
	if target != nil {
		s := analysis.SummarizeOutcomes(rs, *target)
		resp.Summary = &s
	}
	return resp
}
