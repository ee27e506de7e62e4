package respond

// GroupMemberRespond is one row of the member list with profile fields
// joined in.
// Used by:
//   - internal/service/group/service.go: GetGroupMemberList
type GroupMemberRespond struct {
	MemberId       string `json:"member_id"`
	UserId         string `json:"user_id"`
	Nickname       string `json:"nickname"`
	SelectedNumber *int   `json:"selected_number"`
	HasReceivedPot bool   `json:"has_received_pot"`
	JoinedAt       string `json:"joined_at"`
}
