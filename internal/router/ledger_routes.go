// Package router registers the HTTP routes.
// This file defines the contribution ledger endpoints.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterLedgerRoutes registers ledger routes (authenticated).
func (rt *Router) RegisterLedgerRoutes(rg *gin.RouterGroup) {
	ledgerGroup := rg.Group("/ledger")
	{
		ledgerGroup.POST("/recordContribution", rt.handlers.Ledger.RecordContribution)
		ledgerGroup.GET("/getContributionTotal", rt.handlers.Ledger.GetContributionTotal)
		ledgerGroup.GET("/getCycleSummary", rt.handlers.Ledger.GetCycleSummary)
	}
}
