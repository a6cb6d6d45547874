package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
	"github.com/SscSPs/academy_fee_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type feeHandler struct {
	feeService portssvc.FeeSvcFacade
}

func registerFeeRoutes(rg *gin.RouterGroup, feeService portssvc.FeeSvcFacade) {
	h := &feeHandler{feeService: feeService}
	rg.POST("/fees/generate", h.generateFees)
}

// generateFees godoc
// @Summary Generate monthly fees
// @Description Bills one monthly fee to every active student not yet billed for the period. Safe to call repeatedly.
// @Tags fees
// @Accept  json
// @Produce  json
// @Param   request body dto.GenerateFeesRequest false "Billing period (defaults to the current month)"
// @Success 200 {object} dto.GenerateFeesResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid or future period"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to generate fees"
// @Security BearerAuth
// @Router /fees/generate [post]
func (h *feeHandler) generateFees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for GenerateFees", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	period, err := parsePeriodOrCurrent(req.Period, h.feeService.CurrentPeriod())
	if err != nil {
		respondWithError(c, err, "Failed to generate fees")
		return
	}

	billed, err := h.feeService.GenerateMonthlyFees(c.Request.Context(), period)
	if err != nil {
		respondWithError(c, err, "Failed to generate fees")
		return
	}
	logger.Info("Fee generation requested", slog.String("period", period.String()), slog.Int("billed", billed))
	c.JSON(http.StatusOK, dto.GenerateFeesResponse{Period: period.String(), StudentsBilled: billed})
}
