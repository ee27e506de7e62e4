// Package handler provides the HTTP request handlers.
// This file serves the audit trail.
package handler

import (
	"github.com/gin-gonic/gin"

	"susu_ledger_server/internal/service"
)

// AuditHandler handles trail queries.
type AuditHandler struct {
	auditSvc service.AuditService
}

// NewAuditHandler creates the audit handler.
func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

// GetGroupTrail returns a group's events in recorded order.
// GET /audit/getGroupTrail?groupId=xxx
// Data: []respond.AuditEventRespond
func (h *AuditHandler) GetGroupTrail(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleParamError(c, errMissingGroupId)
		return
	}
	data, err := h.auditSvc.GetGroupTrail(groupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
