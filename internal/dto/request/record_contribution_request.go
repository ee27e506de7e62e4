package request

// RecordContributionRequest appends a contribution to the caller's ledger
// for the group's current cycle.
// Used by:
//   - internal/handler/ledger_handler.go: RecordContribution
type RecordContributionRequest struct {
	GroupId string `json:"group_id" binding:"required"`
	// Amount carries no binding rule: the service maps amount <= 0 to the
	// invalid-amount code, which a required tag would mask for exactly 0.
	Amount int64 `json:"amount"`
	// Cycle must equal the group's current cycle; stale clients get a
	// cycle-mismatch error instead of silently paying into the wrong round.
	Cycle int `json:"cycle" binding:"required,min=1"`
}
