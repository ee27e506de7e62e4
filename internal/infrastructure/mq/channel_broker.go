package mq

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"susu_ledger_server/pkg/constants"
)

// ChannelBroker routes settlement events through in-process channels. No
// external queue is needed, which suits development and single-instance
// deployments.
type ChannelBroker struct {
	distributions chan []byte
	confirmations chan []byte
	done          chan struct{}
}

// NewChannelBroker creates an in-process broker.
func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{
		distributions: make(chan []byte, constants.CHANNEL_SIZE),
		confirmations: make(chan []byte, constants.CHANNEL_SIZE),
		done:          make(chan struct{}),
	}
}

func (b *ChannelBroker) PublishDistribution(ctx context.Context, ev DistributionCompletedEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	select {
	case b.distributions <- data:
	default:
		// no consumer attached in channel mode; drop rather than block a payout
		zap.L().Warn("distribution event channel full, dropping", zap.String("group_id", ev.GroupId))
	}
	return nil
}

func (b *ChannelBroker) PublishConfirmation(ctx context.Context, fc FundsConfirmation) error {
	data, err := json.Marshal(fc)
	if err != nil {
		return err
	}
	select {
	case b.confirmations <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start consumes confirmations until Close.
func (b *ChannelBroker) Start(handler ConfirmationHandler) {
	for {
		select {
		case <-b.done:
			return
		case data, ok := <-b.confirmations:
			if !ok {
				return
			}
			var fc FundsConfirmation
			if err := json.Unmarshal(data, &fc); err != nil {
				zap.L().Error("bad funds confirmation payload", zap.Error(err))
				continue
			}
			if err := handler(fc); err != nil {
				zap.L().Error("apply funds confirmation failed",
					zap.String("group_id", fc.GroupId), zap.String("user_id", fc.UserId), zap.Error(err))
			}
		}
	}
}

// Distributions exposes the outbound stream so a co-located settlement
// worker can consume payouts in channel mode.
func (b *ChannelBroker) Distributions() <-chan []byte {
	return b.distributions
}

func (b *ChannelBroker) Close() {
	close(b.done)
}

var _ SettlementBroker = (*ChannelBroker)(nil)
