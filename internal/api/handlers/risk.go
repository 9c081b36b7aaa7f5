package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goal-forecast/internal/api/models"
	"goal-forecast/internal/model"
)

// RiskHandler handles risk-profile requests
type RiskHandler struct{}

// NewRiskHandler creates a new risk handler
func NewRiskHandler() *RiskHandler {
	return &RiskHandler{}
}

var riskDescriptions = map[model.RiskProfile]string{
	model.RiskConservative: "Bond-heavy mix. Lower expected growth, narrow outcome range.",
	model.RiskModerate:     "Balanced stock/bond mix. The default for most goals.",
	model.RiskAggressive:   "Equity-heavy mix. Highest expected growth, widest outcome range.",
}

// ListRiskProfiles handles GET /api/v1/risk-profiles
func (h *RiskHandler) ListRiskProfiles(c *gin.Context) {
	profiles := make([]models.RiskProfileInfo, 0, len(model.RiskProfiles()))
	for _, p := range model.RiskProfiles() {
		profiles = append(profiles, models.RiskProfileInfo{
			Name:        p,
			Description: riskDescriptions[p],
			Assumptions: p.Assumptions(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"risk_profiles": profiles})
}
