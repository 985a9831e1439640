package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/schedule")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.POST("/grid", h.Grid)
		group.POST("/conflicts", h.CheckConflicts)
		group.GET("/recommendations", h.Recommendations)
		group.GET("/duration", h.Duration)
		group.POST("/form-suggestions", h.FormSuggestions)
		group.GET("/heatmap", h.Heatmap)
	}
}
