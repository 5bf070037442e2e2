package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every API route on the router. authRequired
// guards the routes that need an authenticated identity.
func RegisterRoutes(r *gin.Engine, h *Handlers, authRequired gin.HandlerFunc) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "ecotrack-backend",
		})
	})

	activities := r.Group("/cleanup-activities")
	{
		activities.GET("", h.GetCleanupActivities)
		activities.GET("/:id/comments", h.GetActivityComments)

		activities.GET("/my", authRequired, h.GetMyCleanupActivities)
		activities.POST("", authRequired, h.CreateCleanupActivity)
		activities.POST("/:id/like", authRequired, h.ToggleActivityLike)
		activities.POST("/:id/comments", authRequired, h.CreateActivityComment)
	}

	r.GET("/feed/stats", h.GetFeedStats)
	r.DELETE("/comments/:commentId", authRequired, h.DeleteComment)

	reports := r.Group("/reports")
	{
		reports.GET("", h.GetWasteReports)
		reports.GET("/my", authRequired, h.GetMyWasteReports)
		reports.POST("", authRequired, h.CreateWasteReport)
		reports.PUT("/:id/status", authRequired, h.UpdateWasteReportStatus)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/profile", authRequired, h.GetProfile)
		auth.PUT("/profile", authRequired, h.UpdateProfile)
	}
}
