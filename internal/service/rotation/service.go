// Package rotation implements pot distribution and cycle rollover.
//
// Distribute, the receipt-flag flip and (when the recipient was the last
// unpaid member) the rollover all commit in one transaction under the
// group's lock, so a crash or a concurrent call can never leave a cycle
// half-rolled or pay the same member twice.
package rotation

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"susu_ledger_server/internal/config"
	"susu_ledger_server/internal/dao/mysql/repository"
	myredis "susu_ledger_server/internal/dao/redis"
	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/dto/respond"
	"susu_ledger_server/internal/infrastructure/mq"
	"susu_ledger_server/internal/lock"
	"susu_ledger_server/internal/model"
	"susu_ledger_server/pkg/enum/distribution/distribution_status_enum"
	"susu_ledger_server/pkg/enum/group/cycle_type_enum"
	"susu_ledger_server/pkg/errorx"
	"susu_ledger_server/pkg/util/snowflake"
)

const timeLayout = "2006-01-02 15:04:05"

type rotationService struct {
	repos  *repository.Repositories
	cache  myredis.AsyncCacheService
	locker lock.GroupLocker
	broker mq.SettlementBroker
}

// NewRotationService wires the rotation engine onto its dependencies.
func NewRotationService(repos *repository.Repositories, cacheService myredis.AsyncCacheService,
	locker lock.GroupLocker, broker mq.SettlementBroker) *rotationService {
	return &rotationService{
		repos:  repos,
		cache:  cacheService,
		locker: locker,
		broker: broker,
	}
}

// Distribute pays the pot to one member. Creator only. If this payout makes
// every member paid for the cycle, the same transaction resets the receipt
// flags, advances the cycle and pushes the next distribution date forward by
// the cycle length.
func (r *rotationService) Distribute(callerId string, req request.DistributeRequest) (*respond.DistributionRespond, error) {
	var rsp *respond.DistributionRespond
	var event mq.DistributionCompletedEvent

	err := lock.WithLock(context.Background(), r.locker, req.GroupId, config.GetConfig().LockWait(), func() error {
		group, err := r.repos.Group.FindByUuid(req.GroupId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.Newf(errorx.CodeGroupNotFound, "group %s not found", req.GroupId)
			}
			zap.L().Error("find group failed", zap.Error(err))
			return errorx.ErrServerBusy
		}
		if group.CreatorId != callerId {
			return errorx.New(errorx.CodeUnauthorized, "only the creator can distribute")
		}

		recipient, err := r.repos.GroupMember.FindByUuid(req.RecipientId)
		if err != nil || recipient.GroupUuid != req.GroupId {
			if err != nil && !errorx.IsNotFound(err) {
				zap.L().Error("find recipient failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			return errorx.Newf(errorx.CodeMemberNotFound, "member %s not found in group %s", req.RecipientId, req.GroupId)
		}
		if recipient.HasReceivedPot {
			return errorx.Newf(errorx.CodeAlreadyReceived, "member %s already received the pot this cycle", req.RecipientId)
		}

		pot := group.ContributionAmount * int64(group.MemberCnt)
		now := time.Now()
		dist := model.Distribution{
			Uuid:          snowflake.GenerateID(),
			GroupUuid:     group.Uuid,
			RecipientId:   recipient.Uuid,
			RecipientUser: recipient.UserUuid,
			Amount:        pot,
			Cycle:         group.CurrentCycle,
			Status:        distribution_status_enum.COMPLETED,
			DistributedAt: now,
		}

		rolledOver := false
		err = r.repos.Transaction(func(txRepos *repository.Repositories) error {
			if err := txRepos.Distribution.Create(&dist); err != nil {
				zap.L().Error("create distribution failed", zap.Error(err))
				return errorx.ErrServerBusy
			}

			recipient.HasReceivedPot = true
			if err := txRepos.GroupMember.Update(recipient); err != nil {
				zap.L().Error("mark recipient failed", zap.Error(err))
				return errorx.ErrServerBusy
			}

			details, _ := json.Marshal(map[string]any{
				"distribution_id": strconv.FormatInt(dist.Uuid, 10),
				"recipient_id":    recipient.Uuid,
				"amount":          pot,
				"cycle":           dist.Cycle,
			})
			if err := txRepos.Audit.Create(&model.AuditEvent{
				Uuid:      snowflake.GenerateID(),
				GroupUuid: group.Uuid,
				Actor:     callerId,
				EventType: model.AuditDistribution,
				Payload:   string(details),
			}); err != nil {
				return errorx.ErrServerBusy
			}

			members, err := txRepos.GroupMember.FindByGroupUuid(group.Uuid)
			if err != nil {
				zap.L().Error("list members failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			allReceived := true
			for _, m := range members {
				if !m.HasReceivedPot {
					allReceived = false
					break
				}
			}
			if !allReceived {
				return nil
			}

			// cycle rollover: everyone has received once
			rolledOver = true
			if err := txRepos.GroupMember.ResetReceivedFlags(group.Uuid); err != nil {
				zap.L().Error("reset received flags failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			closedCycle := group.CurrentCycle
			group.CurrentCycle++
			// the schedule advances only here, by exactly one cycle length
			group.NextDistributionDate = group.NextDistributionDate.AddDate(0, 0, cycle_type_enum.RolloverDays[group.CycleType])
			if err := txRepos.Group.Update(group); err != nil {
				zap.L().Error("advance cycle failed", zap.Error(err))
				return errorx.ErrServerBusy
			}

			rollDetails, _ := json.Marshal(map[string]any{
				"closed_cycle": closedCycle,
				"next_cycle":   group.CurrentCycle,
				"next_date":    group.NextDistributionDate.Format(timeLayout),
			})
			return txRepos.Audit.Create(&model.AuditEvent{
				Uuid:      snowflake.GenerateID(),
				GroupUuid: group.Uuid,
				Actor:     callerId,
				EventType: model.AuditCycleRollover,
				Payload:   string(rollDetails),
			})
		})
		if err != nil {
			return err
		}

		rsp = &respond.DistributionRespond{
			Id:              strconv.FormatInt(dist.Uuid, 10),
			GroupId:         dist.GroupUuid,
			RecipientId:     dist.RecipientId,
			RecipientUser:   dist.RecipientUser,
			Amount:          dist.Amount,
			Cycle:           dist.Cycle,
			Status:          dist.Status,
			DistributedAt:   dist.DistributedAt.Format(timeLayout),
			CycleRolledOver: rolledOver,
		}
		event = mq.DistributionCompletedEvent{
			DistributionId: rsp.Id,
			GroupId:        dist.GroupUuid,
			RecipientId:    dist.RecipientId,
			RecipientUser:  dist.RecipientUser,
			Amount:         dist.Amount,
			Cycle:          dist.Cycle,
			OccurredAt:     dist.DistributedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// notify the settlement side after commit; a publish failure is logged
	// and retried by reconciliation, never rolled into the payout
	if r.broker != nil {
		if err := r.broker.PublishDistribution(context.Background(), event); err != nil {
			zap.L().Error("publish distribution event failed",
				zap.String("group_id", event.GroupId), zap.Error(err))
		}
	}

	r.cache.SubmitTask(func() {
		if err := r.cache.Delete(context.Background(), "group_info_"+req.GroupId); err != nil {
			zap.L().Error(err.Error())
		}
	})

	return rsp, nil
}

// GetDistributions returns a group's payout history, oldest first.
func (r *rotationService) GetDistributions(groupId string) ([]respond.DistributionRespond, error) {
	if _, err := r.repos.Group.FindByUuid(groupId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeGroupNotFound, "group %s not found", groupId)
		}
		zap.L().Error("find group failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	dists, err := r.repos.Distribution.FindByGroupUuid(groupId)
	if err != nil {
		zap.L().Error("list distributions failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.DistributionRespond, 0, len(dists))
	for _, d := range dists {
		rsp = append(rsp, respond.DistributionRespond{
			Id:            strconv.FormatInt(d.Uuid, 10),
			GroupId:       d.GroupUuid,
			RecipientId:   d.RecipientId,
			RecipientUser: d.RecipientUser,
			Amount:        d.Amount,
			Cycle:         d.Cycle,
			Status:        d.Status,
			DistributedAt: d.DistributedAt.Format(timeLayout),
		})
	}
	return rsp, nil
}
