package mq

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	myconfig "susu_ledger_server/internal/config"
)

// KafkaBroker carries settlement events over Kafka. Distribution events go
// out on the distribution topic keyed by group, so one group's payouts stay
// ordered within a partition; funds confirmations come in on the
// confirmation topic.
type KafkaBroker struct {
	distributionWriter *kafka.Writer
	confirmationWriter *kafka.Writer
	confirmationReader *kafka.Reader
	done               chan struct{}
}

// NewKafkaBroker builds writers and the consumer from config.
func NewKafkaBroker() *KafkaBroker {
	kafkaConfig := myconfig.GetConfig().KafkaConfig

	return &KafkaBroker{
		distributionWriter: &kafka.Writer{
			Addr:                   kafka.TCP(kafkaConfig.HostPort),
			Topic:                  kafkaConfig.DistributionTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           kafkaConfig.Timeout * time.Second,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: false,
		},
		confirmationWriter: &kafka.Writer{
			Addr:                   kafka.TCP(kafkaConfig.HostPort),
			Topic:                  kafkaConfig.ConfirmationTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           kafkaConfig.Timeout * time.Second,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: false,
		},
		confirmationReader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{kafkaConfig.HostPort},
			Topic:          kafkaConfig.ConfirmationTopic,
			CommitInterval: kafkaConfig.Timeout * time.Second,
			GroupID:        "susu_settlement",
			StartOffset:    kafka.LastOffset,
		}),
		done: make(chan struct{}),
	}
}

func (b *KafkaBroker) PublishDistribution(ctx context.Context, ev DistributionCompletedEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.distributionWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.GroupId),
		Value: data,
	})
}

func (b *KafkaBroker) PublishConfirmation(ctx context.Context, fc FundsConfirmation) error {
	data, err := json.Marshal(fc)
	if err != nil {
		return err
	}
	return b.confirmationWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fc.GroupId),
		Value: data,
	})
}

// Start consumes funds confirmations until Close.
func (b *KafkaBroker) Start(handler ConfirmationHandler) {
	for {
		select {
		case <-b.done:
			return
		default:
		}

		msg, err := b.confirmationReader.ReadMessage(context.Background())
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			zap.L().Error("read funds confirmation failed", zap.Error(err))
			continue
		}

		var fc FundsConfirmation
		if err := json.Unmarshal(msg.Value, &fc); err != nil {
			zap.L().Error("bad funds confirmation payload", zap.Error(err))
			continue
		}
		if err := handler(fc); err != nil {
			zap.L().Error("apply funds confirmation failed",
				zap.String("group_id", fc.GroupId), zap.String("user_id", fc.UserId), zap.Error(err))
		}
	}
}

func (b *KafkaBroker) Close() {
	close(b.done)
	if err := b.distributionWriter.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := b.confirmationWriter.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := b.confirmationReader.Close(); err != nil {
		zap.L().Error(err.Error())
	}
}

var _ SettlementBroker = (*KafkaBroker)(nil)
