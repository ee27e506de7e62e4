package request

// AddMemberRequest adds another user to a group. Creator only. The target
// account is identified by user id or by registered email; at least one must
// be set, and user id wins when both are.
// Used by:
//   - internal/handler/group_handler.go: AddMember
type AddMemberRequest struct {
	GroupId string `json:"group_id" binding:"required"`
	UserId  string `json:"user_id"`
	Email   string `json:"email" binding:"omitempty,email"`
}
