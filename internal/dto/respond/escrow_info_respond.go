package respond

// EscrowInfoRespond is the public view of an escrow pool.
// Used by:
//   - internal/service/escrow/service.go: GetEscrowInfo
type EscrowInfoRespond struct {
	Uuid          string `json:"uuid"`
	Name          string `json:"name"`
	CreatorId     string `json:"creator_id"`
	TargetAmount  int64  `json:"target_amount"`
	CurrentAmount int64  `json:"current_amount"`
	Deadline      string `json:"deadline"`
	IsActive      bool   `json:"is_active"`
	TargetReached bool   `json:"target_reached"`
}
