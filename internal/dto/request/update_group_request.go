package request

// UpdateGroupRequest updates a group's mutable fields. Financial terms are
// immutable once the group exists.
// Used by:
//   - internal/handler/group_handler.go: UpdateGroup
type UpdateGroupRequest struct {
	GroupId     string `json:"group_id" binding:"required"`
	Name        string `json:"name" binding:"omitempty,min=2,max=64"`
	Description string `json:"description" binding:"max=255"`
}
