// Package handler provides the HTTP request handlers.
// This file handles pot distribution.
package handler

import (
	"github.com/gin-gonic/gin"

	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/service"
)

// RotationHandler handles payout requests.
type RotationHandler struct {
	rotationSvc service.RotationService
}

// NewRotationHandler creates the rotation handler.
func NewRotationHandler(rotationSvc service.RotationService) *RotationHandler {
	return &RotationHandler{rotationSvc: rotationSvc}
}

// Distribute pays the pot to one member. Creator only.
// POST /rotation/distribute
// Body: request.DistributeRequest
// Data: respond.DistributionRespond
func (h *RotationHandler) Distribute(c *gin.Context) {
	var req request.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.rotationSvc.Distribute(callerId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetDistributions returns a group's payout history.
// GET /rotation/getDistributions?groupId=xxx
// Data: []respond.DistributionRespond
func (h *RotationHandler) GetDistributions(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleParamError(c, errMissingGroupId)
		return
	}
	data, err := h.rotationSvc.GetDistributions(groupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
