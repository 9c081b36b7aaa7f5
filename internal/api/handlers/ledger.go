package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goal-forecast/internal/api/models"
	"goal-forecast/internal/model"
	"goal-forecast/internal/store"
)

// LedgerHandler exposes the transaction log and the state derived from it
type LedgerHandler struct {
	state *store.State
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(state *store.State) *LedgerHandler {
	return &LedgerHandler{state: state}
}

// ListTransactions handles GET /api/v1/transactions
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	txs := h.state.Transactions()
	if txs == nil {
		txs = []model.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// ListBudgets handles GET /api/v1/budgets
func (h *LedgerHandler) ListBudgets(c *gin.Context) {
	budgets := h.state.Budgets()
	views := make([]models.BudgetView, 0, len(budgets))
	for _, b := range budgets {
		views = append(views, models.BudgetView{BudgetCategory: b, Remaining: b.Remaining()})
	}
	c.JSON(http.StatusOK, gin.H{"budgets": views})
}

// CreateBudget handles POST /api/v1/budgets
func (h *LedgerHandler) CreateBudget(c *gin.Context) {
	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	b, err := h.state.AddBudget(req.Name, req.Limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.BudgetView{BudgetCategory: b, Remaining: b.Remaining()})
}

// GetProgress handles GET /api/v1/progress
func (h *LedgerHandler) GetProgress(c *gin.Context) {
	im := h.state.Impact()
	c.JSON(http.StatusOK, models.ProgressResponse{
		Gamification:       h.state.Gamification(),
		Impact:             im,
		ProgressToNextTree: im.ProgressToNextTree(),
	})
}
