package request

// JoinGroupRequest joins the caller to a group.
// Used by:
//   - internal/handler/group_handler.go: JoinGroup
type JoinGroupRequest struct {
	GroupId string `json:"group_id" binding:"required"`
}
