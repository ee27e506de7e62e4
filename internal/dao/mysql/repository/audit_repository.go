// Package repository implements the data access layer.
// This file implements AuditRepository.
package repository

import (
	"gorm.io/gorm"

	"susu_ledger_server/internal/model"
)

// auditRepository implements AuditRepository.
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates an AuditRepository.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(event *model.AuditEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return wrapDBError(err, "create audit event")
	}
	return nil
}

// FindByGroupUuid orders by the snowflake uuid, which is time-sortable, so
// the trail replays in the order events were recorded.
func (r *auditRepository) FindByGroupUuid(groupUuid string) ([]model.AuditEvent, error) {
	var events []model.AuditEvent
	if err := r.db.Where("group_uuid = ?", groupUuid).Order("uuid asc").Find(&events).Error; err != nil {
		return nil, wrapDBErrorf(err, "find audit trail group_uuid=%s", groupUuid)
	}
	return events, nil
}
