package respond

// DistributionRespond is one payout record.
// Used by:
//   - internal/service/rotation/service.go: Distribute, GetDistributions
type DistributionRespond struct {
	Id            string `json:"id"`
	GroupId       string `json:"group_id"`
	RecipientId   string `json:"recipient_id"`
	RecipientUser string `json:"recipient_user"`
	Amount        int64  `json:"amount"`
	Cycle         int    `json:"cycle"`
	Status        int8   `json:"status"`
	DistributedAt string `json:"distributed_at"`
	// CycleRolledOver is true when this payout closed the cycle: every
	// member had received once, flags were reset and the cycle advanced.
	CycleRolledOver bool `json:"cycle_rolled_over,omitempty"`
}
