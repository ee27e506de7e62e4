package respond

// EscrowContributionRespond is one contributor's balance in a pool.
// Used by:
//   - internal/service/escrow/service.go: GetMyContribution
type EscrowContributionRespond struct {
	PoolId    string `json:"pool_id"`
	UserId    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	Withdrawn bool   `json:"withdrawn"`
}
