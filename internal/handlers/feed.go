package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecotrack/backend/internal/feed"
	"github.com/ecotrack/backend/internal/util"
)

// GetCleanupActivities returns one page of the cleanup feed
// GET /cleanup-activities?page=&limit=&filter=
func (h *Handlers) GetCleanupActivities(c *gin.Context) {
	page := util.ParsePositiveInt(c.Query("page"), 1)
	limit := util.ParsePositiveInt(c.Query("limit"), 10)
	filter := c.DefaultQuery("filter", "all")

	activities, pagination, err := h.feed.List(c.Request.Context(), page, limit, filter)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"pagination": pagination,
	})
}

// GetMyCleanupActivities returns the caller's own activities
// GET /cleanup-activities/my
func (h *Handlers) GetMyCleanupActivities(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	activities, err := h.feed.ListByUser(c.Request.Context(), userID)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// CreateCleanupActivity records a verified cleanup and awards points
// POST /cleanup-activities
func (h *Handlers) CreateCleanupActivity(c *gin.Context) {
	identity, ok := util.GetIdentityFromContext(c)
	if !ok {
		return
	}

	var req feed.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "Invalid request body")
		return
	}

	activity, err := h.feed.Create(c.Request.Context(), identity.ID, identity.Name, req)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"activity":     activity,
		"message":      "Cleanup activity recorded",
		"pointsEarned": activity.PointsEarned,
	})
}

// ToggleActivityLike likes or unlikes an activity for the caller
// POST /cleanup-activities/:id/like
func (h *Handlers) ToggleActivityLike(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	result, err := h.feed.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked": result.Liked,
		"likes": result.Likes,
	})
}

// GetFeedStats returns the aggregate numbers shown above the feed
// GET /feed/stats
func (h *Handlers) GetFeedStats(c *gin.Context) {
	stats, err := h.feed.Stats(c.Request.Context())
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
