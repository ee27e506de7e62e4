package respond

// GroupInfoRespond is the public view of a group.
// Used by:
//   - internal/service/group/service.go: GetGroupInfo, ListMyGroups
type GroupInfoRespond struct {
	Uuid                 string `json:"uuid"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	CreatorId            string `json:"creator_id"`
	MemberCnt            int    `json:"member_cnt"`
	MaxMembers           int    `json:"max_members"`
	ContributionAmount   int64  `json:"contribution_amount"`
	Currency             string `json:"currency"`
	CycleType            string `json:"cycle_type"`
	Status               int8   `json:"status"`
	CurrentCycle         int    `json:"current_cycle"`
	NextDistributionDate string `json:"next_distribution_date"`
	CreatedAt            string `json:"created_at"`
}
