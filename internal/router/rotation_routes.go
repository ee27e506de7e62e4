// Package router registers the HTTP routes.
// This file defines the distribution endpoints.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRotationRoutes registers payout routes (authenticated).
func (rt *Router) RegisterRotationRoutes(rg *gin.RouterGroup) {
	rotationGroup := rg.Group("/rotation")
	{
		rotationGroup.POST("/distribute", rt.handlers.Rotation.Distribute)
		rotationGroup.GET("/getDistributions", rt.handlers.Rotation.GetDistributions)
	}
}
