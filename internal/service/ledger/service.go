// Package ledger implements the append-only contribution ledger. A member's
// position in a cycle is always the sum of their records; nothing is ever
// updated in place.
package ledger

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"susu_ledger_server/internal/config"
	"susu_ledger_server/internal/dao/mysql/repository"
	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/dto/respond"
	"susu_ledger_server/internal/infrastructure/mq"
	"susu_ledger_server/internal/lock"
	"susu_ledger_server/internal/model"
	"susu_ledger_server/pkg/errorx"
	"susu_ledger_server/pkg/util/snowflake"
)

type ledgerService struct {
	repos  *repository.Repositories
	locker lock.GroupLocker
}

// NewLedgerService wires the ledger onto its dependencies.
func NewLedgerService(repos *repository.Repositories, locker lock.GroupLocker) *ledgerService {
	return &ledgerService{repos: repos, locker: locker}
}

// RecordContribution appends a payment made through the API.
func (l *ledgerService) RecordContribution(callerId string, req request.RecordContributionRequest) error {
	return l.record(req.GroupId, callerId, req.Amount, req.Cycle, model.ContributionSourceAPI)
}

// ApplySettlement appends a payment confirmed by the settlement pipeline.
// The cycle check still applies: a confirmation for a rolled-over cycle is
// rejected and stays visible in the settlement log.
func (l *ledgerService) ApplySettlement(fc mq.FundsConfirmation) error {
	return l.record(fc.GroupId, fc.UserId, fc.Amount, fc.Cycle, model.ContributionSourceSettlement)
}

func (l *ledgerService) record(groupId, userId string, amount int64, cycle int, source string) error {
	return lock.WithLock(context.Background(), l.locker, groupId, config.GetConfig().LockWait(), func() error {
		group, err := l.findGroup(groupId)
		if err != nil {
			return err
		}
		if amount <= 0 {
			return errorx.Newf(errorx.CodeInvalidAmount, "amount must be positive, got %d", amount)
		}
		if cycle != group.CurrentCycle {
			return errorx.Newf(errorx.CodeCycleMismatch,
				"contribution targets cycle %d but group is in cycle %d", cycle, group.CurrentCycle)
		}
		member, err := l.repos.GroupMember.FindByGroupAndUser(groupId, userId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.Newf(errorx.CodeNotAMember, "user %s is not a member of group %s", userId, groupId)
			}
			zap.L().Error("find membership failed", zap.Error(err))
			return errorx.ErrServerBusy
		}

		record := model.ContributionRecord{
			Uuid:       snowflake.GenerateID(),
			GroupUuid:  groupId,
			MemberUuid: member.Uuid,
			UserUuid:   userId,
			Cycle:      cycle,
			Amount:     amount,
			Source:     source,
			RecordedAt: time.Now(),
		}
		return l.repos.Transaction(func(txRepos *repository.Repositories) error {
			if err := txRepos.Contribution.Create(&record); err != nil {
				zap.L().Error("create contribution failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			details, _ := json.Marshal(map[string]any{
				"member_id": member.Uuid, "amount": amount, "cycle": cycle, "source": source,
			})
			return txRepos.Audit.Create(&model.AuditEvent{
				Uuid:      snowflake.GenerateID(),
				GroupUuid: groupId,
				Actor:     userId,
				EventType: model.AuditContribution,
				Payload:   string(details),
			})
		})
	})
}

// GetContributionTotal returns one member's running total for a cycle.
// cycle <= 0 selects the group's current cycle.
func (l *ledgerService) GetContributionTotal(groupId, memberId string, cycle int) (*respond.ContributionTotalRespond, error) {
	group, err := l.findGroup(groupId)
	if err != nil {
		return nil, err
	}
	member, err := l.repos.GroupMember.FindByUuid(memberId)
	if err != nil || member.GroupUuid != groupId {
		if err != nil && !errorx.IsNotFound(err) {
			zap.L().Error("find member failed", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		return nil, errorx.Newf(errorx.CodeMemberNotFound, "member %s not found in group %s", memberId, groupId)
	}

	if cycle <= 0 {
		cycle = group.CurrentCycle
	}
	total, err := l.repos.Contribution.SumByMemberAndCycle(groupId, memberId, cycle)
	if err != nil {
		zap.L().Error("sum contributions failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.ContributionTotalRespond{
		GroupId:  groupId,
		MemberId: memberId,
		Cycle:    cycle,
		Total:    total,
	}, nil
}

// GetCycleSummary reconciles a cycle: per-member totals against the
// per-cycle contribution amount, plus the collected total against the pot.
func (l *ledgerService) GetCycleSummary(groupId string, cycle int) (*respond.CycleSummaryRespond, error) {
	group, err := l.findGroup(groupId)
	if err != nil {
		return nil, err
	}
	if cycle <= 0 {
		cycle = group.CurrentCycle
	}

	members, err := l.repos.GroupMember.FindMembersWithUserInfo(groupId)
	if err != nil {
		zap.L().Error("list members failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	totals, err := l.repos.Contribution.SumPerMemberByCycle(groupId, cycle)
	if err != nil {
		zap.L().Error("sum per member failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	var collected int64
	fullyFunded := true
	memberTotals := make([]respond.MemberCycleTotal, 0, len(members))
	for _, m := range members {
		total := totals[m.MemberId]
		collected += total
		funded := total >= group.ContributionAmount
		if !funded {
			fullyFunded = false
		}
		memberTotals = append(memberTotals, respond.MemberCycleTotal{
			MemberId: m.MemberId,
			UserId:   m.UserId,
			Nickname: m.Nickname,
			Total:    total,
			Funded:   funded,
		})
	}

	return &respond.CycleSummaryRespond{
		GroupId:     groupId,
		Cycle:       cycle,
		PotAmount:   group.ContributionAmount * int64(group.MemberCnt),
		Collected:   collected,
		Members:     memberTotals,
		FullyFunded: fullyFunded,
	}, nil
}

func (l *ledgerService) findGroup(groupId string) (*model.GroupInfo, error) {
	group, err := l.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeGroupNotFound, "group %s not found", groupId)
		}
		zap.L().Error("find group failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return group, nil
}
