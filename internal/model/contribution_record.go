package model

import (
	"time"

	"gorm.io/gorm"
)

// ContributionRecord is one increment of a member's funding toward a cycle's
// pot. Records are append-only; a member's ledger total for a cycle is the
// sum of their records.
type ContributionRecord struct {
	gorm.Model
	Uuid       int64     `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:snowflake id"`
	GroupUuid  string    `gorm:"column:group_uuid;type:char(20);index;not null;comment:group uuid"`
	MemberUuid string    `gorm:"column:member_uuid;type:char(20);index;not null;comment:member uuid"`
	UserUuid   string    `gorm:"column:user_uuid;type:char(20);index;not null;comment:contributing user uuid"`
	Cycle      int       `gorm:"column:cycle;not null;comment:cycle the contribution funds"`
	Amount     int64     `gorm:"column:amount;not null;comment:amount, minor units"`
	Source     string    `gorm:"column:source;type:varchar(20);not null;comment:api or settlement"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null;comment:record time"`
}

func (ContributionRecord) TableName() string {
	return "contribution_record"
}

// Contribution sources.
const (
	ContributionSourceAPI        = "api"
	ContributionSourceSettlement = "settlement"
)
