package request

// CreateGroupRequest creates a rotating savings group. The caller becomes
// creator and first member.
// Used by:
//   - internal/handler/group_handler.go: CreateGroup
//   - internal/service/group/service.go: CreateGroup
type CreateGroupRequest struct {
	Name               string `json:"name" binding:"required,min=2,max=64"`
	Description        string `json:"description" binding:"max=255"`
	MaxMembers         int    `json:"max_members" binding:"required,min=2,max=100"`
	ContributionAmount int64  `json:"contribution_amount" binding:"required,min=1"`
	Currency           string `json:"currency" binding:"required,len=3"`
	CycleType          string `json:"cycle_type" binding:"required"`
}
