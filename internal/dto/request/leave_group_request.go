package request

// LeaveGroupRequest removes the caller from a group. The creator cannot
// leave; they delete the group instead.
// Used by:
//   - internal/handler/group_handler.go: LeaveGroup
type LeaveGroupRequest struct {
	GroupId string `json:"group_id" binding:"required"`
}
