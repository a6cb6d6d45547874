package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
	"github.com/SscSPs/academy_fee_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles the expense book. Payout expenses are listed here
// but can only be removed by reversing their payout.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := &expenseHandler{expenseService: expenseService}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}
}

// createExpense godoc
// @Summary Record a manual expense
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to create expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to create expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists live expenses newest first. Use nextToken from the previous page to continue.
// @Tags expenses
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Param   source query string false "Expense source" Enums(MANUAL, PAYOUT)
// @Param   category query string false "Category"
// @Param   from query string false "Inclusive lower bound (RFC3339)"
// @Param   to query string false "Exclusive upper bound (RFC3339)"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to list expenses"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	resp, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Expense not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to retrieve expense"
// @Security BearerAuth
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	expense, err := h.expenseService.GetExpense(c.Request.Context(), c.Param("expenseID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Edit a manual expense
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   expense body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Expense not found"
// @Failure 409 {object} handlers.ErrorResponse "Payout expenses cannot be edited"
// @Failure 500 {object} handlers.ErrorResponse "Failed to update expense"
// @Security BearerAuth
// @Router /expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("expenseID"), req, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Deletes a manual expense. Deleting a payout expense reverses the payout and returns the reversal.
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.DeleteExpenseResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Expense not found"
// @Failure 409 {object} handlers.ErrorResponse "Concurrent modification"
// @Failure 500 {object} handlers.ErrorResponse "Failed to delete expense"
// @Security BearerAuth
// @Router /expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}
	expenseID := c.Param("expenseID")
	deletion, err := h.expenseService.DeleteExpense(c.Request.Context(), expenseID, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to delete expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToDeleteExpenseResponse(deletion))
}
