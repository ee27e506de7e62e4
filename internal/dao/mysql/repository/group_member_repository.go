// Package repository implements the data access layer.
// This file implements GroupMemberRepository.
package repository

import (
	"gorm.io/gorm"

	"susu_ledger_server/internal/model"
)

// groupMemberRepository implements GroupMemberRepository.
type groupMemberRepository struct {
	db *gorm.DB
}

// NewGroupMemberRepository creates a GroupMemberRepository.
func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

func (r *groupMemberRepository) FindByGroupUuid(groupUuid string) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if err := r.db.Where("group_uuid = ?", groupUuid).Order("joined_at asc").Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "find members group_uuid=%s", groupUuid)
	}
	return members, nil
}

func (r *groupMemberRepository) FindByUuid(memberUuid string) (*model.GroupMember, error) {
	var member model.GroupMember
	if err := r.db.First(&member, "uuid = ?", memberUuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "find member uuid=%s", memberUuid)
	}
	return &member, nil
}

func (r *groupMemberRepository) FindByGroupAndUser(groupUuid, userUuid string) (*model.GroupMember, error) {
	var member model.GroupMember
	if err := r.db.Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "find member group_uuid=%s user_uuid=%s", groupUuid, userUuid)
	}
	return &member, nil
}

func (r *groupMemberRepository) FindGroupUuidsByUser(userUuid string) ([]string, error) {
	var groupUuids []string
	if err := r.db.Model(&model.GroupMember{}).Where("user_uuid = ?", userUuid).
		Pluck("group_uuid", &groupUuids).Error; err != nil {
		return nil, wrapDBErrorf(err, "find groups of user_uuid=%s", userUuid)
	}
	return groupUuids, nil
}

// FindMembersWithUserInfo joins user_info for the member-list view.
func (r *groupMemberRepository) FindMembersWithUserInfo(groupUuid string) ([]model.GroupMemberWithUserInfo, error) {
	var members []model.GroupMemberWithUserInfo
	if err := r.db.Table("group_member").
		Select("group_member.uuid as member_id, user_info.uuid as user_id, user_info.nickname, "+
			"group_member.selected_number, group_member.has_received_pot, group_member.joined_at").
		Joins("LEFT JOIN user_info ON group_member.user_uuid = user_info.uuid").
		Where("group_member.group_uuid = ? AND group_member.deleted_at IS NULL", groupUuid).
		Order("group_member.joined_at asc").
		Scan(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "find member details group_uuid=%s", groupUuid)
	}
	return members, nil
}

func (r *groupMemberRepository) Create(member *model.GroupMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "create member")
	}
	return nil
}

func (r *groupMemberRepository) Update(member *model.GroupMember) error {
	if err := r.db.Save(member).Error; err != nil {
		return wrapDBError(err, "update member")
	}
	return nil
}

func (r *groupMemberRepository) Delete(groupUuid, userUuid string) error {
	if err := r.db.Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).
		Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "delete member group_uuid=%s user_uuid=%s", groupUuid, userUuid)
	}
	return nil
}

func (r *groupMemberRepository) DeleteByGroupUuid(groupUuid string) error {
	if err := r.db.Where("group_uuid = ?", groupUuid).Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "delete all members group_uuid=%s", groupUuid)
	}
	return nil
}

// ResetReceivedFlags clears every member's receipt flag; part of the atomic
// cycle rollover.
func (r *groupMemberRepository) ResetReceivedFlags(groupUuid string) error {
	if err := r.db.Model(&model.GroupMember{}).Where("group_uuid = ?", groupUuid).
		UpdateColumn("has_received_pot", false).Error; err != nil {
		return wrapDBErrorf(err, "reset received flags group_uuid=%s", groupUuid)
	}
	return nil
}
