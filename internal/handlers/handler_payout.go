package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
	"github.com/SscSPs/academy_fee_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// payoutHandler handles teacher payouts, their reports and reversals.
type payoutHandler struct {
	payoutService portssvc.PayoutSvcFacade
	feeService    portssvc.FeeSvcFacade // current period
}

func registerPayoutRoutes(rg *gin.RouterGroup, payoutService portssvc.PayoutSvcFacade, feeService portssvc.FeeSvcFacade) {
	h := &payoutHandler{payoutService: payoutService, feeService: feeService}

	teachers := rg.Group("/teachers/:teacherID/payouts")
	{
		teachers.POST("", h.issuePayout)
		teachers.GET("", h.listPayouts)
	}

	payouts := rg.Group("/payouts/:payoutID")
	{
		payouts.GET("", h.getPayout)
		payouts.GET("/report", h.getPayoutReport)
		payouts.POST("/reverse", h.reversePayout)
	}
}

// issuePayout godoc
// @Summary Issue a teacher payout
// @Description Pays the teacher's share of fees collected from fully paid students in the period. Responds with eligible=false when nothing is payable.
// @Tags payouts
// @Accept  json
// @Produce  json
// @Param   teacherID path string true "Teacher ID"
// @Param   request body dto.IssuePayoutRequest false "Payout period (defaults to the current month)"
// @Success 201 {object} dto.IssuePayoutResponse "Payout issued"
// @Success 200 {object} dto.IssuePayoutResponse "No eligible earnings"
// @Failure 400 {object} handlers.ErrorResponse "Invalid period"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 409 {object} handlers.ErrorResponse "Concurrent modification"
// @Failure 500 {object} handlers.ErrorResponse "Failed to issue payout"
// @Security BearerAuth
// @Router /teachers/{teacherID}/payouts [post]
func (h *payoutHandler) issuePayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssuePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for IssuePayout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}
	period, err := parsePeriodOrCurrent(req.Period, h.feeService.CurrentPeriod())
	if err != nil {
		respondWithError(c, err, "Failed to issue payout")
		return
	}

	result, err := h.payoutService.IssuePayout(c.Request.Context(), c.Param("teacherID"), period, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to issue payout")
		return
	}
	status := http.StatusCreated
	if !result.Eligible {
		status = http.StatusOK
	}
	c.JSON(status, dto.ToIssuePayoutResponse(result))
}

// listPayouts godoc
// @Summary List a teacher's payouts
// @Tags payouts
// @Produce  json
// @Param   teacherID path string true "Teacher ID"
// @Param   period query string false "Period (YYYY-MM)"
// @Success 200 {array} dto.PayoutResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid period"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to list payouts"
// @Security BearerAuth
// @Router /teachers/{teacherID}/payouts [get]
func (h *payoutHandler) listPayouts(c *gin.Context) {
	var params dto.ListPayoutsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	var period *domain.Period
	if params.Period != "" {
		p, err := domain.ParsePeriod(params.Period)
		if err != nil {
			respondWithError(c, err, "Failed to list payouts")
			return
		}
		period = &p
	}

	payouts, err := h.payoutService.ListPayouts(c.Request.Context(), c.Param("teacherID"), period)
	if err != nil {
		respondWithError(c, err, "Failed to list payouts")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayoutResponses(payouts))
}

// getPayout godoc
// @Summary Get a payout
// @Tags payouts
// @Produce  json
// @Param   payoutID path string true "Payout ID"
// @Success 200 {object} dto.PayoutResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Payout not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to retrieve payout"
// @Security BearerAuth
// @Router /payouts/{payoutID} [get]
func (h *payoutHandler) getPayout(c *gin.Context) {
	payout, err := h.payoutService.GetPayout(c.Request.Context(), c.Param("payoutID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve payout")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayoutResponse(payout))
}

// getPayoutReport godoc
// @Summary Get the report of a payout
// @Description Returns the per-student breakdown of an issued payout. Reversed payouts have no report.
// @Tags payouts
// @Produce  json
// @Param   payoutID path string true "Payout ID"
// @Success 200 {object} domain.Report
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Payout or report not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to retrieve payout report"
// @Security BearerAuth
// @Router /payouts/{payoutID}/report [get]
func (h *payoutHandler) getPayoutReport(c *gin.Context) {
	report, err := h.payoutService.GetPayoutReport(c.Request.Context(), c.Param("payoutID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve payout report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// reversePayout godoc
// @Summary Reverse a payout
// @Description Voids the income the payout consumed, restores those amounts to student balances and removes the payout expense and report. Reversing twice is a no-op.
// @Tags payouts
// @Produce  json
// @Param   payoutID path string true "Payout ID"
// @Success 200 {object} dto.ReversalResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Payout not found"
// @Failure 409 {object} handlers.ErrorResponse "Concurrent modification"
// @Failure 500 {object} handlers.ErrorResponse "Failed to reverse payout"
// @Security BearerAuth
// @Router /payouts/{payoutID}/reverse [post]
func (h *payoutHandler) reversePayout(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}
	result, err := h.payoutService.ReversePayout(c.Request.Context(), c.Param("payoutID"), actorID)
	if err != nil {
		respondWithError(c, err, "Failed to reverse payout")
		return
	}
	c.JSON(http.StatusOK, dto.ToReversalResponse(result))
}
