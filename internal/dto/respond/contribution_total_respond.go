package respond

// ContributionTotalRespond is one member's running total for a cycle.
// Used by:
//   - internal/service/ledger/service.go: GetContributionTotal
type ContributionTotalRespond struct {
	GroupId  string `json:"group_id"`
	MemberId string `json:"member_id"`
	Cycle    int    `json:"cycle"`
	Total    int64  `json:"total"`
}
