// Package repository implements the data access layer.
// This file implements ContributionRepository.
package repository

import (
	"gorm.io/gorm"

	"susu_ledger_server/internal/model"
)

// contributionRepository implements ContributionRepository.
type contributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository creates a ContributionRepository.
func NewContributionRepository(db *gorm.DB) ContributionRepository {
	return &contributionRepository{db: db}
}

func (r *contributionRepository) Create(record *model.ContributionRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return wrapDBError(err, "create contribution")
	}
	return nil
}

func (r *contributionRepository) FindByGroupAndCycle(groupUuid string, cycle int) ([]model.ContributionRecord, error) {
	var records []model.ContributionRecord
	if err := r.db.Where("group_uuid = ? AND cycle = ?", groupUuid, cycle).
		Order("uuid asc").Find(&records).Error; err != nil {
		return nil, wrapDBErrorf(err, "list contributions group_uuid=%s cycle=%d", groupUuid, cycle)
	}
	return records, nil
}

func (r *contributionRepository) SumByMemberAndCycle(groupUuid, memberUuid string, cycle int) (int64, error) {
	var total int64
	if err := r.db.Model(&model.ContributionRecord{}).
		Where("group_uuid = ? AND member_uuid = ? AND cycle = ?", groupUuid, memberUuid, cycle).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, wrapDBErrorf(err, "sum contributions member_uuid=%s cycle=%d", memberUuid, cycle)
	}
	return total, nil
}

func (r *contributionRepository) SumByGroupAndCycle(groupUuid string, cycle int) (int64, error) {
	var total int64
	if err := r.db.Model(&model.ContributionRecord{}).
		Where("group_uuid = ? AND cycle = ?", groupUuid, cycle).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, wrapDBErrorf(err, "sum contributions group_uuid=%s cycle=%d", groupUuid, cycle)
	}
	return total, nil
}

// SumPerMemberByCycle groups cycle totals by member for the cycle summary.
func (r *contributionRepository) SumPerMemberByCycle(groupUuid string, cycle int) (map[string]int64, error) {
	type row struct {
		MemberUuid string
		Total      int64
	}
	var rows []row
	if err := r.db.Model(&model.ContributionRecord{}).
		Select("member_uuid, COALESCE(SUM(amount), 0) as total").
		Where("group_uuid = ? AND cycle = ?", groupUuid, cycle).
		Group("member_uuid").
		Scan(&rows).Error; err != nil {
		return nil, wrapDBErrorf(err, "sum per member group_uuid=%s cycle=%d", groupUuid, cycle)
	}
	totals := make(map[string]int64, len(rows))
	for _, v := range rows {
		totals[v.MemberUuid] = v.Total
	}
	return totals, nil
}
