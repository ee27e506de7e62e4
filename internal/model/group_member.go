package model

import (
	"time"

	"gorm.io/gorm"
)

// GroupMember links a user account to a group.
//
// SelectedNumber is nullable and unique among a group's active members; the
// uniqueness invariant is enforced by the service layer under the per-group
// lock rather than a DB constraint, so soft-deleted rows never block a
// number's reuse.
type GroupMember struct {
	gorm.Model
	Uuid           string    `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:member uuid"`
	GroupUuid      string    `gorm:"column:group_uuid;type:char(20);index;not null;comment:owning group uuid"`
	UserUuid       string    `gorm:"column:user_uuid;type:char(20);index;not null;comment:user uuid"`
	SelectedNumber *int      `gorm:"column:selected_number;comment:drawn number, null until selected"`
	HasReceivedPot bool      `gorm:"column:has_received_pot;default:false;comment:pot receipt flag, reset each cycle"`
	JoinedAt       time.Time `gorm:"column:joined_at;not null;comment:join time"`
}

func (GroupMember) TableName() string {
	return "group_member"
}

// GroupMemberWithUserInfo is the member-list join projection.
type GroupMemberWithUserInfo struct {
	MemberId       string    `json:"member_id"`
	UserId         string    `json:"user_id"`
	Nickname       string    `json:"nickname"`
	SelectedNumber *int      `json:"selected_number"`
	HasReceivedPot bool      `json:"has_received_pot"`
	JoinedAt       time.Time `json:"joined_at"`
}
