package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := &activityHandler{activityService: activityService}
	rg.GET("/activities", h.listActivities)
}

// listActivities godoc
// @Summary Recent activity
// @Description Lists ledger events (fees generated, payments, payouts, reversals, expenses) newest first
// @Tags activities
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListActivitiesResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to list activities"
// @Security BearerAuth
// @Router /activities [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	var params dto.ListActivitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	resp, err := h.activityService.ListRecentActivities(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list activities")
		return
	}
	c.JSON(http.StatusOK, resp)
}
