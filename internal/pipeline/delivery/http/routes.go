package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the extraction and review endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	rg.POST("/extractions", h.Extract)
	rg.POST("/checks", h.Check)
	rg.GET("/progress", h.Progress)

	an := rg.Group("/analyses")
	{
		an.POST("", h.Analyze)
		an.GET("/:id", h.GetAnalysis)
		an.POST("/:id/judgments", h.Judge)
	}
}
