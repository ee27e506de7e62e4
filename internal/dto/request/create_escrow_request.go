package request

// CreateEscrowRequest opens a fixed-target escrow pool.
// Used by:
//   - internal/handler/escrow_handler.go: CreateEscrow
type CreateEscrowRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=64"`
	TargetAmount int64  `json:"target_amount" binding:"required,min=1"`
	DeadlineDays int    `json:"deadline_days" binding:"required,min=1,max=365"`
}
