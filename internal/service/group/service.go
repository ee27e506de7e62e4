// Package group implements group lifecycle, membership and rotation-number
// selection. Every mutating operation runs under the group's exclusive lock,
// so capacity checks, duplicate checks and number claims never race.
package group

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"susu_ledger_server/internal/config"
	"susu_ledger_server/internal/dao/mysql/repository"
	myredis "susu_ledger_server/internal/dao/redis"
	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/dto/respond"
	"susu_ledger_server/internal/lock"
	"susu_ledger_server/internal/model"
	"susu_ledger_server/pkg/enum/group/cycle_type_enum"
	"susu_ledger_server/pkg/enum/group/group_status_enum"
	"susu_ledger_server/pkg/errorx"
	"susu_ledger_server/pkg/util/random"
	"susu_ledger_server/pkg/util/snowflake"
)

const timeLayout = "2006-01-02 15:04:05"

type groupService struct {
	repos  *repository.Repositories
	cache  myredis.AsyncCacheService
	locker lock.GroupLocker
}

// NewGroupService wires the group service onto its dependencies.
func NewGroupService(repos *repository.Repositories, cacheService myredis.AsyncCacheService, locker lock.GroupLocker) *groupService {
	return &groupService{
		repos:  repos,
		cache:  cacheService,
		locker: locker,
	}
}

// findGroup resolves a group uuid, mapping a missing or soft-deleted row to
// the group-not-found code.
func findGroup(repos *repository.Repositories, groupId string) (*model.GroupInfo, error) {
	group, err := repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeGroupNotFound, "group %s not found", groupId)
		}
		zap.L().Error("find group failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return group, nil
}

// audit appends an event row inside the caller's transaction.
func audit(txRepos *repository.Repositories, groupId, actor, eventType string, details map[string]any) error {
	payload := ""
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return err
		}
		payload = string(data)
	}
	return txRepos.Audit.Create(&model.AuditEvent{
		Uuid:      snowflake.GenerateID(),
		GroupUuid: groupId,
		Actor:     actor,
		EventType: eventType,
		Payload:   payload,
	})
}

// CreateGroup creates the group with the caller as creator and first member.
// No lock is needed; the uuid is fresh.
func (g *groupService) CreateGroup(creatorId string, req request.CreateGroupRequest) (*respond.GroupInfoRespond, error) {
	if !cycle_type_enum.Valid(req.CycleType) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "unknown cycle type %q", req.CycleType)
	}
	if _, err := g.repos.User.FindByUuid(creatorId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "creator account not found")
		}
		zap.L().Error("find creator failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	now := time.Now()
	group := model.GroupInfo{
		Uuid:                 fmt.Sprintf("G%s", random.GetNowAndLenRandomString(11)),
		Name:                 req.Name,
		Description:          req.Description,
		CreatorId:            creatorId,
		MemberCnt:            1,
		MaxMembers:           req.MaxMembers,
		ContributionAmount:   req.ContributionAmount,
		Currency:             req.Currency,
		CycleType:            req.CycleType,
		Status:               group_status_enum.ACTIVE,
		CurrentCycle:         1,
		NextDistributionDate: now.AddDate(0, 0, cycle_type_enum.RolloverDays[req.CycleType]),
	}

	err := g.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Group.Create(&group); err != nil {
			zap.L().Error("create group failed", zap.Error(err))
			return errorx.ErrServerBusy
		}
		member := model.GroupMember{
			Uuid:      fmt.Sprintf("M%s", random.GetNowAndLenRandomString(11)),
			GroupUuid: group.Uuid,
			UserUuid:  creatorId,
			JoinedAt:  now,
		}
		if err := txRepos.GroupMember.Create(&member); err != nil {
			zap.L().Error("create creator membership failed", zap.Error(err))
			return errorx.ErrServerBusy
		}
		if err := audit(txRepos, group.Uuid, creatorId, model.AuditGroupCreated, map[string]any{
			"name": group.Name, "max_members": group.MaxMembers,
			"contribution_amount": group.ContributionAmount, "cycle_type": group.CycleType,
		}); err != nil {
			return errorx.ErrServerBusy
		}
		return audit(txRepos, group.Uuid, creatorId, model.AuditMemberJoined, map[string]any{
			"member_id": member.Uuid, "user_id": creatorId,
		})
	})
	if err != nil {
		return nil, err
	}

	g.invalidate(group.Uuid, creatorId)
	return groupRespond(&group), nil
}

// AddMember lets the creator enroll another user, addressed by user id or by
// registered email.
func (g *groupService) AddMember(callerId string, req request.AddMemberRequest) error {
	return lock.WithLock(context.Background(), g.locker, req.GroupId, config.GetConfig().LockWait(), func() error {
		group, err := findGroup(g.repos, req.GroupId)
		if err != nil {
			return err
		}
		if group.CreatorId != callerId {
			return errorx.New(errorx.CodeUnauthorized, "only the creator can add members")
		}
		userId, err := g.resolveUserId(req)
		if err != nil {
			return err
		}
		return g.enroll(group, userId, callerId, model.AuditMemberAdded)
	})
}

// resolveUserId maps an AddMemberRequest onto a user uuid. User id wins when
// both identifiers are present.
func (g *groupService) resolveUserId(req request.AddMemberRequest) (string, error) {
	if req.UserId != "" {
		return req.UserId, nil
	}
	if req.Email == "" {
		return "", errorx.New(errorx.CodeInvalidParam, "user_id or email is required")
	}
	account, err := g.repos.User.FindByEmail(req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			return "", errorx.Newf(errorx.CodeUserNotExist, "no account registered for %s", req.Email)
		}
		zap.L().Error("find user by email failed", zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	return account.Uuid, nil
}

// JoinGroup lets a user enroll themselves.
func (g *groupService) JoinGroup(callerId, groupId string) error {
	return lock.WithLock(context.Background(), g.locker, groupId, config.GetConfig().LockWait(), func() error {
		group, err := findGroup(g.repos, groupId)
		if err != nil {
			return err
		}
		return g.enroll(group, callerId, callerId, model.AuditMemberJoined)
	})
}

// enroll shares the membership checks between AddMember and JoinGroup.
// Caller must hold the group lock.
func (g *groupService) enroll(group *model.GroupInfo, userId, actor, eventType string) error {
	if group.MemberCnt >= group.MaxMembers {
		return errorx.Newf(errorx.CodeGroupFull, "group %s is full (%d members)", group.Uuid, group.MaxMembers)
	}
	if _, err := g.repos.User.FindByUuid(userId); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeUserNotExist, "user %s not found", userId)
		}
		zap.L().Error("find user failed", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if existing, err := g.repos.GroupMember.FindByGroupAndUser(group.Uuid, userId); err == nil && existing != nil {
		return errorx.Newf(errorx.CodeDuplicateMember, "user %s is already a member", userId)
	} else if err != nil && !errorx.IsNotFound(err) {
		zap.L().Error("find membership failed", zap.Error(err))
		return errorx.ErrServerBusy
	}

	member := model.GroupMember{
		Uuid:      fmt.Sprintf("M%s", random.GetNowAndLenRandomString(11)),
		GroupUuid: group.Uuid,
		UserUuid:  userId,
		JoinedAt:  time.Now(),
	}
	err := g.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.GroupMember.Create(&member); err != nil {
			zap.L().Error("create membership failed", zap.Error(err))
			return errorx.ErrServerBusy
		}
		if err := txRepos.Group.IncrementMemberCount(group.Uuid); err != nil {
			zap.L().Error("increment member count failed", zap.Error(err))
			return errorx.ErrServerBusy
		}
		return audit(txRepos, group.Uuid, actor, eventType, map[string]any{
			"member_id": member.Uuid, "user_id": userId,
		})
	})
	if err != nil {
		return err
	}

	g.invalidate(group.Uuid, userId)
	return nil
}

// LeaveGroup removes the caller's membership. The creator cannot leave;
// deleting the group is their exit.
func (g *groupService) LeaveGroup(callerId, groupId string) error {
	return lock.WithLock(context.Background(), g.locker, groupId, config.GetConfig().LockWait(), func() error {
		group, err := findGroup(g.repos, groupId)
		if err != nil {
			return err
		}
		if group.CreatorId == callerId {
			return errorx.New(errorx.CodeCreatorCannotLeave, "the creator cannot leave; delete the group instead")
		}
		member, err := g.repos.GroupMember.FindByGroupAndUser(groupId, callerId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.Newf(errorx.CodeNotAMember, "user %s is not a member of group %s", callerId, groupId)
			}
			zap.L().Error("find membership failed", zap.Error(err))
			return errorx.ErrServerBusy
		}

		err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
			if err := txRepos.GroupMember.Delete(groupId, callerId); err != nil {
				zap.L().Error("delete membership failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			if err := txRepos.Group.DecrementMemberCount(groupId); err != nil {
				zap.L().Error("decrement member count failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			// the member's number returns to the pool with the row
			return audit(txRepos, groupId, callerId, model.AuditMemberLeft, map[string]any{
				"member_id": member.Uuid, "user_id": callerId,
			})
		})
		if err != nil {
			return err
		}

		g.invalidate(groupId, callerId)
		return nil
	})
}

// DeleteGroup retires a group. Ledger, distribution and audit rows are kept;
// the group itself stops resolving.
func (g *groupService) DeleteGroup(callerId, groupId string) error {
	return lock.WithLock(context.Background(), g.locker, groupId, config.GetConfig().LockWait(), func() error {
		group, err := findGroup(g.repos, groupId)
		if err != nil {
			return err
		}
		if group.CreatorId != callerId {
			return errorx.New(errorx.CodeUnauthorized, "only the creator can delete the group")
		}

		err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
			group.Status = group_status_enum.COMPLETED
			if err := txRepos.Group.Update(group); err != nil {
				zap.L().Error("complete group failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			if err := audit(txRepos, groupId, callerId, model.AuditGroupDeleted, nil); err != nil {
				return errorx.ErrServerBusy
			}
			if err := txRepos.Group.SoftDelete(groupId); err != nil {
				zap.L().Error("delete group failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			return nil
		})
		if err != nil {
			return err
		}

		g.invalidate(groupId, callerId)
		return nil
	})
}

// UpdateGroup changes display fields. Financial terms stay immutable.
func (g *groupService) UpdateGroup(callerId string, req request.UpdateGroupRequest) error {
	return lock.WithLock(context.Background(), g.locker, req.GroupId, config.GetConfig().LockWait(), func() error {
		group, err := findGroup(g.repos, req.GroupId)
		if err != nil {
			return err
		}
		if group.CreatorId != callerId {
			return errorx.New(errorx.CodeUnauthorized, "only the creator can update the group")
		}

		if req.Name != "" {
			group.Name = req.Name
		}
		if req.Description != "" {
			group.Description = req.Description
		}

		err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
			if err := txRepos.Group.Update(group); err != nil {
				zap.L().Error("update group failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			return audit(txRepos, req.GroupId, callerId, model.AuditGroupUpdated, map[string]any{
				"name": group.Name, "description": group.Description,
			})
		})
		if err != nil {
			return err
		}

		g.invalidate(req.GroupId, callerId)
		return nil
	})
}

// SelectNumber claims a rotation number for the caller. First claim wins;
// claiming again replaces the caller's previous number. Numbers are advisory
// for payout order, so a claim never blocks a distribution.
func (g *groupService) SelectNumber(callerId string, req request.SelectNumberRequest) error {
	return lock.WithLock(context.Background(), g.locker, req.GroupId, config.GetConfig().LockWait(), func() error {
		group, err := findGroup(g.repos, req.GroupId)
		if err != nil {
			return err
		}
		if req.Number < 1 || req.Number > group.MaxMembers {
			return errorx.Newf(errorx.CodeNumberNotInPool, "number %d is outside 1..%d", req.Number, group.MaxMembers)
		}

		member, err := g.repos.GroupMember.FindByGroupAndUser(req.GroupId, callerId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.Newf(errorx.CodeNotAMember, "user %s is not a member of group %s", callerId, req.GroupId)
			}
			zap.L().Error("find membership failed", zap.Error(err))
			return errorx.ErrServerBusy
		}
		if member.SelectedNumber != nil && *member.SelectedNumber == req.Number {
			// idempotent re-claim of one's own number
			return nil
		}

		members, err := g.repos.GroupMember.FindByGroupUuid(req.GroupId)
		if err != nil {
			zap.L().Error("list members failed", zap.Error(err))
			return errorx.ErrServerBusy
		}
		for _, m := range members {
			if m.Uuid != member.Uuid && m.SelectedNumber != nil && *m.SelectedNumber == req.Number {
				return errorx.Newf(errorx.CodeNumberTaken, "number %d is already taken", req.Number)
			}
		}

		previous := member.SelectedNumber
		number := req.Number
		member.SelectedNumber = &number
		err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
			if err := txRepos.GroupMember.Update(member); err != nil {
				zap.L().Error("update member number failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			details := map[string]any{"member_id": member.Uuid, "number": number}
			if previous != nil {
				details["released"] = *previous
			}
			return audit(txRepos, req.GroupId, callerId, model.AuditNumberSelected, details)
		})
		if err != nil {
			return err
		}

		g.invalidate(req.GroupId, callerId)
		return nil
	})
}

// GetGroupInfo serves the group view through the read cache.
func (g *groupService) GetGroupInfo(groupId string) (*respond.GroupInfoRespond, error) {
	cacheKey := "group_info_" + groupId

	rspString, err := g.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var rsp respond.GroupInfoRespond
		if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
			return &rsp, nil
		}
		zap.L().Warn("unmarshal group info cache failed, fallback to db", zap.String("groupId", groupId))
	} else if err != nil {
		zap.L().Error("redis get error", zap.Error(err))
	}

	group, err := findGroup(g.repos, groupId)
	if err != nil {
		return nil, err
	}
	rsp := groupRespond(group)

	g.cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(rsp)
		if err != nil {
			zap.L().Error("marshal group info for cache failed", zap.Error(err))
			return
		}
		if err := g.cache.Set(context.Background(), cacheKey, string(rspBytes), 30*time.Minute); err != nil {
			zap.L().Error("set group info cache failed", zap.Error(err))
		}
	})

	return rsp, nil
}

// GetGroupMemberList returns members with profile fields joined in.
func (g *groupService) GetGroupMemberList(groupId string) ([]respond.GroupMemberRespond, error) {
	if _, err := findGroup(g.repos, groupId); err != nil {
		return nil, err
	}
	members, err := g.repos.GroupMember.FindMembersWithUserInfo(groupId)
	if err != nil {
		zap.L().Error("list members failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.GroupMemberRespond, 0, len(members))
	for _, m := range members {
		rsp = append(rsp, respond.GroupMemberRespond{
			MemberId:       m.MemberId,
			UserId:         m.UserId,
			Nickname:       m.Nickname,
			SelectedNumber: m.SelectedNumber,
			HasReceivedPot: m.HasReceivedPot,
			JoinedAt:       m.JoinedAt.Format(timeLayout),
		})
	}
	return rsp, nil
}

// ListMyGroups returns every group the user belongs to, creator or not.
func (g *groupService) ListMyGroups(userId string) ([]respond.GroupInfoRespond, error) {
	cacheKey := "my_group_list_" + userId

	rspString, err := g.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var rsp []respond.GroupInfoRespond
		if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
			return rsp, nil
		}
		zap.L().Warn("unmarshal my group list cache failed, fallback to db", zap.String("userId", userId))
	}

	groupUuids, err := g.repos.GroupMember.FindGroupUuidsByUser(userId)
	if err != nil {
		zap.L().Error("find user groups failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	groups, err := g.repos.Group.FindByUuids(groupUuids)
	if err != nil {
		zap.L().Error("load groups failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// len=0 make so an empty list serializes as [] rather than null
	rsp := make([]respond.GroupInfoRespond, 0, len(groups))
	for i := range groups {
		rsp = append(rsp, *groupRespond(&groups[i]))
	}

	g.cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(rsp)
		if err != nil {
			return
		}
		if err := g.cache.Set(context.Background(), cacheKey, string(rspBytes), 30*time.Minute); err != nil {
			zap.L().Error("set my group list cache failed", zap.Error(err))
		}
	})

	return rsp, nil
}

// invalidate drops read caches touched by a mutation, asynchronously.
func (g *groupService) invalidate(groupId, userId string) {
	g.cache.SubmitTask(func() {
		if err := g.cache.Delete(context.Background(), "group_info_"+groupId); err != nil {
			zap.L().Error(err.Error())
		}
		if err := g.cache.DeleteByPattern(context.Background(), "my_group_list_"+userId+"*"); err != nil {
			zap.L().Error(err.Error())
		}
	})
}

func groupRespond(group *model.GroupInfo) *respond.GroupInfoRespond {
	return &respond.GroupInfoRespond{
		Uuid:                 group.Uuid,
		Name:                 group.Name,
		Description:          group.Description,
		CreatorId:            group.CreatorId,
		MemberCnt:            group.MemberCnt,
		MaxMembers:           group.MaxMembers,
		ContributionAmount:   group.ContributionAmount,
		Currency:             group.Currency,
		CycleType:            group.CycleType,
		Status:               group.Status,
		CurrentCycle:         group.CurrentCycle,
		NextDistributionDate: group.NextDistributionDate.Format(timeLayout),
		CreatedAt:            group.CreatedAt.Format(timeLayout),
	}
}
