// Package handler provides the HTTP request handlers.
// This file handles group lifecycle, membership and number selection.
package handler

import (
	"github.com/gin-gonic/gin"

	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/service"
)

// GroupHandler handles group requests.
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler creates the group handler.
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// CreateGroup creates a group with the caller as creator.
// POST /group/createGroup
// Body: request.CreateGroupRequest
// Data: respond.GroupInfoRespond
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.CreateGroup(callerId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AddMember enrolls another user. Creator only.
// POST /group/addMember
// Body: request.AddMemberRequest
func (h *GroupHandler) AddMember(c *gin.Context) {
	var req request.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.AddMember(callerId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// JoinGroup enrolls the caller.
// POST /group/joinGroup
// Body: request.JoinGroupRequest
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	var req request.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.JoinGroup(callerId(c), req.GroupId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// LeaveGroup removes the caller's membership.
// POST /group/leaveGroup
// Body: request.LeaveGroupRequest
func (h *GroupHandler) LeaveGroup(c *gin.Context) {
	var req request.LeaveGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.LeaveGroup(callerId(c), req.GroupId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeleteGroup retires the group. Creator only.
// POST /group/deleteGroup
// Body: request.DeleteGroupRequest
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	var req request.DeleteGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.DeleteGroup(callerId(c), req.GroupId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UpdateGroup changes display fields. Creator only.
// POST /group/updateGroup
// Body: request.UpdateGroupRequest
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	var req request.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.UpdateGroup(callerId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SelectNumber claims a rotation number.
// POST /group/selectNumber
// Body: request.SelectNumberRequest
func (h *GroupHandler) SelectNumber(c *gin.Context) {
	var req request.SelectNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.SelectNumber(callerId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetGroupInfo returns the group view.
// GET /group/getGroupInfo?groupId=xxx
// Data: respond.GroupInfoRespond
func (h *GroupHandler) GetGroupInfo(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleParamError(c, errMissingGroupId)
		return
	}
	data, err := h.groupSvc.GetGroupInfo(groupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupMemberList returns the member list.
// GET /group/getGroupMemberList?groupId=xxx
// Data: []respond.GroupMemberRespond
func (h *GroupHandler) GetGroupMemberList(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleParamError(c, errMissingGroupId)
		return
	}
	data, err := h.groupSvc.GetGroupMemberList(groupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListMyGroups returns the caller's groups.
// GET /group/listMyGroups
// Data: []respond.GroupInfoRespond
func (h *GroupHandler) ListMyGroups(c *gin.Context) {
	data, err := h.groupSvc.ListMyGroups(callerId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
