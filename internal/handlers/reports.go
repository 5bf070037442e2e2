package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecotrack/backend/internal/reports"
	"github.com/ecotrack/backend/internal/util"
)

// GetWasteReports lists all waste reports, newest first
// GET /reports
func (h *Handlers) GetWasteReports(c *gin.Context) {
	list, err := h.reports.List(c.Request.Context())
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": list})
}

// GetMyWasteReports lists the caller's own waste reports
// GET /reports/my
func (h *Handlers) GetMyWasteReports(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	list, err := h.reports.ListByUser(c.Request.Context(), userID)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": list})
}

// CreateWasteReport submits a waste report and credits the reporter
// POST /reports
func (h *Handlers) CreateWasteReport(c *gin.Context) {
	identity, ok := util.GetIdentityFromContext(c)
	if !ok {
		return
	}

	var req reports.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reports.Create(c.Request.Context(), identity.ID, identity.Name, req)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"report":       report,
		"message":      "Waste report submitted",
		"pointsEarned": reports.ReportAward,
	})
}

// UpdateWasteReportStatus moves a report through its status lifecycle
// PUT /reports/:id/status
func (h *Handlers) UpdateWasteReportStatus(c *gin.Context) {
	if _, ok := util.GetUserIDFromContext(c); !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reports.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":  report,
		"message": "Report status updated",
	})
}
