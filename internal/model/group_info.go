package model

import (
	"time"

	"gorm.io/gorm"
)

// GroupInfo is a rotating savings group.
//
// Money columns hold minor currency units (cents) to keep ledger sums exact.
// The number pool is implicit: it is always the sequence 1..MaxMembers, so
// only MaxMembers is stored.
type GroupInfo struct {
	gorm.Model
	Uuid                 string    `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:group uuid"`
	Name                 string    `gorm:"column:name;type:varchar(50);not null;comment:display name"`
	Description          string    `gorm:"column:description;type:varchar(500);comment:description"`
	CreatorId            string    `gorm:"column:creator_id;type:char(20);index;not null;comment:creator user uuid"`
	MemberCnt            int       `gorm:"column:member_cnt;default:1;comment:current member count"`
	MaxMembers           int       `gorm:"column:max_members;not null;comment:capacity, also the number pool size"`
	ContributionAmount   int64     `gorm:"column:contribution_amount;not null;comment:per-member per-cycle amount, minor units"`
	Currency             string    `gorm:"column:currency;type:char(3);not null;comment:ISO currency code"`
	CycleType            string    `gorm:"column:cycle_type;type:varchar(10);not null;comment:weekly, bi-weekly or monthly"`
	Status               int8      `gorm:"column:status;default:0;comment:0 active, 1 paused, 2 completed"`
	CurrentCycle         int       `gorm:"column:current_cycle;default:1;comment:monotonically increasing cycle counter"`
	NextDistributionDate time.Time `gorm:"column:next_distribution_date;not null;comment:scheduled next payout date"`
}

func (GroupInfo) TableName() string {
	return "group_info"
}
