// Package handler provides the HTTP request handlers.
// This file handles the contribution ledger.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/service"
)

// LedgerHandler handles contribution requests.
type LedgerHandler struct {
	ledgerSvc service.LedgerService
}

// NewLedgerHandler creates the ledger handler.
func NewLedgerHandler(ledgerSvc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// RecordContribution appends a payment by the caller.
// POST /ledger/recordContribution
// Body: request.RecordContributionRequest
func (h *LedgerHandler) RecordContribution(c *gin.Context) {
	var req request.RecordContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.ledgerSvc.RecordContribution(callerId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetContributionTotal returns one member's running total for a cycle.
// GET /ledger/getContributionTotal?groupId=xxx&memberId=xxx&cycle=N
// cycle is optional; omitted means the current cycle.
// Data: respond.ContributionTotalRespond
func (h *LedgerHandler) GetContributionTotal(c *gin.Context) {
	groupId := c.Query("groupId")
	memberId := c.Query("memberId")
	if groupId == "" || memberId == "" {
		HandleParamError(c, errMissingGroupId)
		return
	}
	cycle, _ := strconv.Atoi(c.Query("cycle"))

	data, err := h.ledgerSvc.GetContributionTotal(groupId, memberId, cycle)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetCycleSummary reconciles a cycle across all members.
// GET /ledger/getCycleSummary?groupId=xxx&cycle=N
// Data: respond.CycleSummaryRespond
func (h *LedgerHandler) GetCycleSummary(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleParamError(c, errMissingGroupId)
		return
	}
	cycle, _ := strconv.Atoi(c.Query("cycle"))

	data, err := h.ledgerSvc.GetCycleSummary(groupId, cycle)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
