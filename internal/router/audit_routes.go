// Package router registers the HTTP routes.
// This file defines the audit trail endpoint.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuditRoutes registers trail routes (authenticated).
func (rt *Router) RegisterAuditRoutes(rg *gin.RouterGroup) {
	auditGroup := rg.Group("/audit")
	{
		auditGroup.GET("/getGroupTrail", rt.handlers.Audit.GetGroupTrail)
	}
}
