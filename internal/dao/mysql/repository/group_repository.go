// Package repository implements the data access layer.
// This file implements GroupRepository.
package repository

import (
	"gorm.io/gorm"

	"susu_ledger_server/internal/model"
)

// groupRepository implements GroupRepository.
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a GroupRepository.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// FindByUuid returns the group, excluding soft-deleted rows so a deleted
// group surfaces as not found.
func (r *groupRepository) FindByUuid(uuid string) (*model.GroupInfo, error) {
	var group model.GroupInfo
	if err := r.db.First(&group, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "find group uuid=%s", uuid)
	}
	return &group, nil
}

func (r *groupRepository) FindByCreatorId(creatorId string) ([]model.GroupInfo, error) {
	var groups []model.GroupInfo
	if err := r.db.Where("creator_id = ?", creatorId).Find(&groups).Error; err != nil {
		return nil, wrapDBErrorf(err, "find groups creator_id=%s", creatorId)
	}
	return groups, nil
}

func (r *groupRepository) FindByUuids(uuids []string) ([]model.GroupInfo, error) {
	var groups []model.GroupInfo
	if len(uuids) == 0 {
		return groups, nil
	}
	if err := r.db.Where("uuid IN ?", uuids).Find(&groups).Error; err != nil {
		return nil, wrapDBError(err, "find groups by uuids")
	}
	return groups, nil
}

func (r *groupRepository) Create(group *model.GroupInfo) error {
	if err := r.db.Create(group).Error; err != nil {
		return wrapDBError(err, "create group")
	}
	return nil
}

func (r *groupRepository) Update(group *model.GroupInfo) error {
	if err := r.db.Save(group).Error; err != nil {
		return wrapDBError(err, "update group")
	}
	return nil
}

// IncrementMemberCount bumps member_cnt atomically with gorm.Expr.
func (r *groupRepository) IncrementMemberCount(uuid string) error {
	if err := r.db.Model(&model.GroupInfo{}).Where("uuid = ?", uuid).
		UpdateColumn("member_cnt", gorm.Expr("member_cnt + ?", 1)).Error; err != nil {
		return wrapDBErrorf(err, "increment member count uuid=%s", uuid)
	}
	return nil
}

func (r *groupRepository) DecrementMemberCount(uuid string) error {
	if err := r.db.Model(&model.GroupInfo{}).Where("uuid = ?", uuid).
		UpdateColumn("member_cnt", gorm.Expr("member_cnt - ?", 1)).Error; err != nil {
		return wrapDBErrorf(err, "decrement member count uuid=%s", uuid)
	}
	return nil
}

func (r *groupRepository) SoftDelete(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.GroupInfo{}).Error; err != nil {
		return wrapDBErrorf(err, "delete group uuid=%s", uuid)
	}
	return nil
}
