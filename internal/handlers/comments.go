package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecotrack/backend/internal/util"
)

// GetActivityComments lists an activity's comments oldest first
// GET /cleanup-activities/:id/comments
func (h *Handlers) GetActivityComments(c *gin.Context) {
	comments, err := h.comments.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateActivityComment posts a comment on an activity
// POST /cleanup-activities/:id/comments
func (h *Handlers) CreateActivityComment(c *gin.Context) {
	identity, ok := util.GetIdentityFromContext(c)
	if !ok {
		return
	}

	var req struct {
		CommentText string `json:"commentText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.comments.Add(c.Request.Context(),
		c.Param("id"), identity.ID, identity.Name, req.CommentText)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment": comment,
		"message": "Comment added",
	})
}

// DeleteComment removes the caller's own comment
// DELETE /comments/:commentId
func (h *Handlers) DeleteComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), c.Param("commentId"), userID); err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
