package request

// EscrowWithdrawRequest withdraws the caller's balance after the pool
// reached its target.
// Used by:
//   - internal/handler/escrow_handler.go: Withdraw
type EscrowWithdrawRequest struct {
	PoolId string `json:"pool_id" binding:"required"`
}
