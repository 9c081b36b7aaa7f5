package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"goal-forecast/internal/api/models"
	"goal-forecast/internal/insight"
	"goal-forecast/internal/model"
	"goal-forecast/internal/store"
)

const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeGoalNotFound    = "GOAL_NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeAIDecodeError   = "AI_DECODE_ERROR"
	CodeSimulationError = "SIMULATION_ERROR"
)

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
}

// respondDomainError maps the typed errors of the core packages to HTTP responses.
func respondDomainError(c *gin.Context, err error) {
	_ = c.Error(err)

	var invalid *model.InvalidInputError
	var decErr *insight.DecodeError
	switch {
	case errors.As(err, &invalid):
		respondError(c, http.StatusBadRequest, CodeInvalidInput, invalid.Error(), map[string]interface{}{
			"field": invalid.Field,
		})
	case errors.Is(err, store.ErrGoalNotFound):
		respondError(c, http.StatusNotFound, CodeGoalNotFound, err.Error(), nil)
	case errors.Is(err, store.ErrInvalidAmount):
		respondError(c, http.StatusBadRequest, CodeInvalidInput, err.Error(), map[string]interface{}{
			"field": "amount",
		})
	case errors.Is(err, store.ErrInvalidBudget):
		respondError(c, http.StatusBadRequest, CodeInvalidInput, err.Error(), nil)
	case errors.Is(err, store.ErrBudgetExists):
		respondError(c, http.StatusConflict, CodeConflict, err.Error(), nil)
	case errors.As(err, &decErr):
		respondError(c, http.StatusBadGateway, CodeAIDecodeError, decErr.Error(), map[string]interface{}{
			"schema": decErr.Schema,
			"reason": decErr.Reason,
		})
	default:
		respondError(c, http.StatusInternalServerError, CodeSimulationError, err.Error(), nil)
	}
}
