// Package mq carries engine events across the settlement boundary.
// Completed distributions flow out to the payment side; confirmed transfers
// flow back in and land on the contribution ledger.
package mq

import "time"

// DistributionCompletedEvent is published after a payout commits.
type DistributionCompletedEvent struct {
	DistributionId string    `json:"distribution_id"`
	GroupId        string    `json:"group_id"`
	RecipientId    string    `json:"recipient_id"`
	RecipientUser  string    `json:"recipient_user"`
	Amount         int64     `json:"amount"`
	Cycle          int       `json:"cycle"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// FundsConfirmation is consumed when the payment side confirms a member's
// transfer for a cycle.
type FundsConfirmation struct {
	GroupId string `json:"group_id"`
	UserId  string `json:"user_id"`
	Amount  int64  `json:"amount"`
	Cycle   int    `json:"cycle"`
}
