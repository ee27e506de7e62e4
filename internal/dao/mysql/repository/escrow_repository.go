// Package repository implements the data access layer.
// This file implements EscrowRepository.
package repository

import (
	"gorm.io/gorm"

	"susu_ledger_server/internal/model"
)

// escrowRepository implements EscrowRepository.
type escrowRepository struct {
	db *gorm.DB
}

// NewEscrowRepository creates an EscrowRepository.
func NewEscrowRepository(db *gorm.DB) EscrowRepository {
	return &escrowRepository{db: db}
}

func (r *escrowRepository) CreatePool(pool *model.EscrowPool) error {
	if err := r.db.Create(pool).Error; err != nil {
		return wrapDBError(err, "create escrow pool")
	}
	return nil
}

func (r *escrowRepository) FindPoolByUuid(uuid string) (*model.EscrowPool, error) {
	var pool model.EscrowPool
	if err := r.db.First(&pool, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "find escrow pool uuid=%s", uuid)
	}
	return &pool, nil
}

func (r *escrowRepository) UpdatePool(pool *model.EscrowPool) error {
	if err := r.db.Save(pool).Error; err != nil {
		return wrapDBError(err, "update escrow pool")
	}
	return nil
}

func (r *escrowRepository) FindContribution(poolUuid, userUuid string) (*model.EscrowContribution, error) {
	var c model.EscrowContribution
	if err := r.db.Where("pool_uuid = ? AND user_uuid = ?", poolUuid, userUuid).First(&c).Error; err != nil {
		return nil, wrapDBErrorf(err, "find escrow contribution pool_uuid=%s user_uuid=%s", poolUuid, userUuid)
	}
	return &c, nil
}

func (r *escrowRepository) CreateContribution(c *model.EscrowContribution) error {
	if err := r.db.Create(c).Error; err != nil {
		return wrapDBError(err, "create escrow contribution")
	}
	return nil
}

func (r *escrowRepository) UpdateContribution(c *model.EscrowContribution) error {
	if err := r.db.Save(c).Error; err != nil {
		return wrapDBError(err, "update escrow contribution")
	}
	return nil
}

func (r *escrowRepository) ListContributions(poolUuid string) ([]model.EscrowContribution, error) {
	var cs []model.EscrowContribution
	if err := r.db.Where("pool_uuid = ?", poolUuid).Find(&cs).Error; err != nil {
		return nil, wrapDBErrorf(err, "list escrow contributions pool_uuid=%s", poolUuid)
	}
	return cs, nil
}
