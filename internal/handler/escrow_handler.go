// Package handler provides the HTTP request handlers.
// This file handles escrow pools.
package handler

import (
	"github.com/gin-gonic/gin"

	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/service"
)

// EscrowHandler handles escrow requests.
type EscrowHandler struct {
	escrowSvc service.EscrowService
}

// NewEscrowHandler creates the escrow handler.
func NewEscrowHandler(escrowSvc service.EscrowService) *EscrowHandler {
	return &EscrowHandler{escrowSvc: escrowSvc}
}

// CreateEscrow opens a pool.
// POST /escrow/createEscrow
// Body: request.CreateEscrowRequest
// Data: respond.EscrowInfoRespond
func (h *EscrowHandler) CreateEscrow(c *gin.Context) {
	var req request.CreateEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.escrowSvc.CreateEscrow(callerId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Contribute deposits into an open pool.
// POST /escrow/contribute
// Body: request.EscrowContributeRequest
func (h *EscrowHandler) Contribute(c *gin.Context) {
	var req request.EscrowContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.escrowSvc.Contribute(callerId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Withdraw reclaims the caller's balance.
// POST /escrow/withdraw
// Body: request.EscrowWithdrawRequest
// Data: the withdrawn amount in minor units
func (h *EscrowHandler) Withdraw(c *gin.Context) {
	var req request.EscrowWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	amount, err := h.escrowSvc.Withdraw(callerId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"amount": amount})
}

// GetEscrowInfo returns the pool view.
// GET /escrow/getEscrowInfo?poolId=xxx
// Data: respond.EscrowInfoRespond
func (h *EscrowHandler) GetEscrowInfo(c *gin.Context) {
	poolId := c.Query("poolId")
	if poolId == "" {
		HandleParamError(c, errMissingPoolId)
		return
	}
	data, err := h.escrowSvc.GetEscrowInfo(poolId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMyContribution returns the caller's balance in a pool.
// GET /escrow/getMyContribution?poolId=xxx
// Data: respond.EscrowContributionRespond
func (h *EscrowHandler) GetMyContribution(c *gin.Context) {
	poolId := c.Query("poolId")
	if poolId == "" {
		HandleParamError(c, errMissingPoolId)
		return
	}
	data, err := h.escrowSvc.GetMyContribution(poolId, callerId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
