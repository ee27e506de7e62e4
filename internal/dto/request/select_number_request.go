package request

// SelectNumberRequest claims a rotation number from the group's pool
// (1..maxMembers). First claim wins; re-selection releases the old number.
// Used by:
//   - internal/handler/group_handler.go: SelectNumber
type SelectNumberRequest struct {
	GroupId string `json:"group_id" binding:"required"`
	Number  int    `json:"number" binding:"required,min=1"`
}
