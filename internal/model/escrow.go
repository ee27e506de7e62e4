package model

import (
	"time"

	"gorm.io/gorm"
)

// EscrowPool is the fixed-target escrow variant of the contribution ledger:
// contributors fund a pool toward a target amount and reclaim their balance
// once the target is reached. There is no rotation; this mirrors the
// contract-style contribute/withdraw flow.
type EscrowPool struct {
	gorm.Model
	Uuid          string    `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:pool uuid"`
	Name          string    `gorm:"column:name;type:varchar(50);not null;comment:display name"`
	CreatorId     string    `gorm:"column:creator_id;type:char(20);index;not null;comment:creator user uuid"`
	TargetAmount  int64     `gorm:"column:target_amount;not null;comment:funding target, minor units"`
	CurrentAmount int64     `gorm:"column:current_amount;default:0;comment:total contributed, minor units"`
	Deadline      time.Time `gorm:"column:deadline;not null;comment:contribution cutoff"`
	TargetReached bool      `gorm:"column:target_reached;default:false;comment:latched once current reaches target"`
	IsActive      bool      `gorm:"column:is_active;default:true;comment:false after close"`
}

func (EscrowPool) TableName() string {
	return "escrow_pool"
}

// EscrowContribution is one contributor's running balance in a pool.
// The balance accumulates across contribute calls and is zeroed exactly once
// on withdrawal.
type EscrowContribution struct {
	gorm.Model
	PoolUuid  string `gorm:"column:pool_uuid;type:char(20);index;not null;comment:pool uuid"`
	UserUuid  string `gorm:"column:user_uuid;type:char(20);index;not null;comment:contributor user uuid"`
	Amount    int64  `gorm:"column:amount;not null;comment:current balance, minor units"`
	Withdrawn bool   `gorm:"column:withdrawn;default:false;comment:true once reclaimed"`
}

func (EscrowContribution) TableName() string {
	return "escrow_contribution"
}
