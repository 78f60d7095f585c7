package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the feedback ledger endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	fb := rg.Group("/feedback")
	{
		fb.POST("", h.Record)
		fb.GET("", h.List)
		fb.GET("/stats", h.Stats)
		fb.GET("/search", h.Search)
		fb.GET("/rejections", h.Rejections)
		fb.GET("/context", h.Context)
	}
}
