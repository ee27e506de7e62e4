package request

// EscrowContributeRequest deposits into an open escrow pool.
// Used by:
//   - internal/handler/escrow_handler.go: Contribute
type EscrowContributeRequest struct {
	PoolId string `json:"pool_id" binding:"required"`
	// No binding rule: the service maps amount <= 0 to the invalid-amount
	// code, which a required tag would mask for exactly 0.
	Amount int64 `json:"amount"`
}
