package model

import (
	"time"

	"gorm.io/gorm"
)

// Distribution is a payout of the pot to one member.
// At most one completed row may exist per (group, cycle, recipient); the
// rotation service enforces this atomically with the receipt-flag check.
type Distribution struct {
	gorm.Model
	Uuid          int64     `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:snowflake id"`
	GroupUuid     string    `gorm:"column:group_uuid;type:char(20);index;not null;comment:group uuid"`
	RecipientId   string    `gorm:"column:recipient_id;type:char(20);index;not null;comment:recipient member uuid"`
	RecipientUser string    `gorm:"column:recipient_user;type:char(20);not null;comment:recipient user uuid"`
	Amount        int64     `gorm:"column:amount;not null;comment:pot amount, minor units"`
	Cycle         int       `gorm:"column:cycle;not null;comment:cycle the payout settles"`
	Status        int8      `gorm:"column:status;not null;comment:0 pending, 1 completed, 2 failed"`
	DistributedAt time.Time `gorm:"column:distributed_at;not null;comment:payout time"`
}

func (Distribution) TableName() string {
	return "distribution"
}
