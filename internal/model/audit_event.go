package model

import "gorm.io/gorm"

// AuditEvent is one entry of the append-only per-group audit trail. Events
// are written in the same transaction as the mutation they describe, so the
// trail is sufficient to reconstruct group state for dispute resolution.
// Snowflake ids give a total order consistent with commit order per node.
type AuditEvent struct {
	gorm.Model
	Uuid      int64  `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:snowflake id"`
	GroupUuid string `gorm:"column:group_uuid;type:char(20);index;not null;comment:group uuid"`
	Actor     string `gorm:"column:actor;type:char(20);not null;comment:caller user uuid"`
	EventType string `gorm:"column:event_type;type:varchar(30);index;not null;comment:transition kind"`
	Payload   string `gorm:"column:payload;type:TEXT;comment:JSON details"`
}

func (AuditEvent) TableName() string {
	return "audit_event"
}

// Audit event types, one per state transition.
const (
	AuditGroupCreated   = "group_created"
	AuditGroupUpdated   = "group_updated"
	AuditGroupDeleted   = "group_deleted"
	AuditMemberJoined   = "member_joined"
	AuditMemberAdded    = "member_added"
	AuditMemberLeft     = "member_left"
	AuditNumberSelected = "number_selected"
	AuditContribution   = "contribution_recorded"
	AuditDistribution   = "distribution_completed"
	AuditCycleRollover  = "cycle_rollover"
)
