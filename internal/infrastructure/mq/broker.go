package mq

import "context"

// ConfirmationHandler processes one funds confirmation. A non-nil error
// leaves the message uncommitted so it is retried.
type ConfirmationHandler func(fc FundsConfirmation) error

// SettlementBroker abstracts the settlement transport. Two implementations:
// KafkaBroker for distributed deployments, ChannelBroker for single-process
// ones and tests.
type SettlementBroker interface {
	// PublishDistribution emits a completed-distribution event.
	PublishDistribution(ctx context.Context, ev DistributionCompletedEvent) error
	// PublishConfirmation emits a funds confirmation. On Kafka this is
	// normally the payment side's job; the channel broker uses it to loop
	// confirmations back in-process.
	PublishConfirmation(ctx context.Context, fc FundsConfirmation) error
	// Start runs the confirmation consume loop until Close.
	Start(handler ConfirmationHandler)
	// Close releases transport resources and stops the consume loop.
	Close()
}
