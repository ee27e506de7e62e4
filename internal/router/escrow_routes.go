// Package router registers the HTTP routes.
// This file defines the escrow endpoints.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterEscrowRoutes registers escrow routes (authenticated).
func (rt *Router) RegisterEscrowRoutes(rg *gin.RouterGroup) {
	escrowGroup := rg.Group("/escrow")
	{
		escrowGroup.POST("/createEscrow", rt.handlers.Escrow.CreateEscrow)
		escrowGroup.POST("/contribute", rt.handlers.Escrow.Contribute)
		escrowGroup.POST("/withdraw", rt.handlers.Escrow.Withdraw)
		escrowGroup.GET("/getEscrowInfo", rt.handlers.Escrow.GetEscrowInfo)
		escrowGroup.GET("/getMyContribution", rt.handlers.Escrow.GetMyContribution)
	}
}
