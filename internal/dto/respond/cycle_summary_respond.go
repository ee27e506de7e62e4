package respond

// MemberCycleTotal is one member's position in a cycle.
type MemberCycleTotal struct {
	MemberId string `json:"member_id"`
	UserId   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Total    int64  `json:"total"`
	// Funded means the member's cycle total covers the per-cycle
	// contribution amount.
	Funded bool `json:"funded"`
}

// CycleSummaryRespond reconciles a cycle: what each member has paid, the
// collected total, and the pot the group pays out. Collected and pot can
// disagree when members under- or over-pay; surfacing both makes the gap
// visible to the organizer.
// Used by:
//   - internal/service/ledger/service.go: GetCycleSummary
type CycleSummaryRespond struct {
	GroupId     string             `json:"group_id"`
	Cycle       int                `json:"cycle"`
	PotAmount   int64              `json:"pot_amount"`
	Collected   int64              `json:"collected"`
	Members     []MemberCycleTotal `json:"members"`
	FullyFunded bool               `json:"fully_funded"`
}
