package request

// DeleteGroupRequest deletes a group. Creator only; the group's records
// remain for audit but the group stops resolving.
// Used by:
//   - internal/handler/group_handler.go: DeleteGroup
type DeleteGroupRequest struct {
	GroupId string `json:"group_id" binding:"required"`
}
