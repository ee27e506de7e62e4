// Package repository implements the data access layer.
// This file implements DistributionRepository.
package repository

import (
	"gorm.io/gorm"

	"susu_ledger_server/internal/model"
	"susu_ledger_server/pkg/enum/distribution/distribution_status_enum"
)

// distributionRepository implements DistributionRepository.
type distributionRepository struct {
	db *gorm.DB
}

// NewDistributionRepository creates a DistributionRepository.
func NewDistributionRepository(db *gorm.DB) DistributionRepository {
	return &distributionRepository{db: db}
}

func (r *distributionRepository) Create(dist *model.Distribution) error {
	if err := r.db.Create(dist).Error; err != nil {
		return wrapDBError(err, "create distribution")
	}
	return nil
}

func (r *distributionRepository) FindByGroupUuid(groupUuid string) ([]model.Distribution, error) {
	var dists []model.Distribution
	if err := r.db.Where("group_uuid = ?", groupUuid).Order("uuid asc").Find(&dists).Error; err != nil {
		return nil, wrapDBErrorf(err, "find distributions group_uuid=%s", groupUuid)
	}
	return dists, nil
}

func (r *distributionRepository) CountCompleted(groupUuid, recipientId string, cycle int) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Distribution{}).
		Where("group_uuid = ? AND recipient_id = ? AND cycle = ? AND status = ?",
			groupUuid, recipientId, cycle, distribution_status_enum.COMPLETED).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "count distributions recipient_id=%s cycle=%d", recipientId, cycle)
	}
	return count, nil
}
