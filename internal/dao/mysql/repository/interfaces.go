// Package repository implements the data access layer.
// All repository interfaces are defined here; implementations live in the
// per-entity files. The Repositories aggregate is the dependency-injection
// entry point for the service layer.
package repository

import (
	"gorm.io/gorm"

	"susu_ledger_server/internal/model"
)

// UserRepository accesses user accounts.
type UserRepository interface {
	// FindByUuid looks a user up by uuid.
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByEmail looks a user up by registered email.
	FindByEmail(email string) (*model.UserInfo, error)
	// Create persists a new account.
	Create(user *model.UserInfo) error
}

// GroupRepository accesses rotating savings groups.
type GroupRepository interface {
	// FindByUuid returns an active (non-deleted) group.
	FindByUuid(uuid string) (*model.GroupInfo, error)
	// FindByCreatorId returns all groups a user created.
	FindByCreatorId(creatorId string) ([]model.GroupInfo, error)
	// FindByUuids returns groups matching the given uuids.
	FindByUuids(uuids []string) ([]model.GroupInfo, error)
	// Create persists a new group.
	Create(group *model.GroupInfo) error
	// Update saves all group fields.
	Update(group *model.GroupInfo) error
	// IncrementMemberCount adds one to member_cnt atomically.
	IncrementMemberCount(uuid string) error
	// DecrementMemberCount subtracts one from member_cnt atomically.
	DecrementMemberCount(uuid string) error
	// SoftDelete marks the group deleted; subsequent FindByUuid misses.
	SoftDelete(uuid string) error
}

// GroupMemberRepository accesses group membership rows.
type GroupMemberRepository interface {
	// FindByGroupUuid returns a group's active members.
	FindByGroupUuid(groupUuid string) ([]model.GroupMember, error)
	// FindByUuid returns a member row by member uuid.
	FindByUuid(memberUuid string) (*model.GroupMember, error)
	// FindByGroupAndUser returns the membership of one user in one group.
	FindByGroupAndUser(groupUuid, userUuid string) (*model.GroupMember, error)
	// FindGroupUuidsByUser returns the group uuids a user belongs to.
	FindGroupUuidsByUser(userUuid string) ([]string, error)
	// FindMembersWithUserInfo joins user profiles onto the member list.
	FindMembersWithUserInfo(groupUuid string) ([]model.GroupMemberWithUserInfo, error)
	// Create adds a member.
	Create(member *model.GroupMember) error
	// Update saves all member fields.
	Update(member *model.GroupMember) error
	// Delete removes one user's membership.
	Delete(groupUuid, userUuid string) error
	// DeleteByGroupUuid removes all members of a group.
	DeleteByGroupUuid(groupUuid string) error
	// ResetReceivedFlags clears has_received_pot for all of a group's members.
	ResetReceivedFlags(groupUuid string) error
}

// ContributionRepository accesses the contribution ledger.
type ContributionRepository interface {
	// Create appends a contribution record.
	Create(record *model.ContributionRecord) error
	// FindByGroupAndCycle returns a cycle's records in ledger order.
	FindByGroupAndCycle(groupUuid string, cycle int) ([]model.ContributionRecord, error)
	// SumByMemberAndCycle totals one member's records for a cycle.
	SumByMemberAndCycle(groupUuid, memberUuid string, cycle int) (int64, error)
	// SumByGroupAndCycle totals all records of a group's cycle.
	SumByGroupAndCycle(groupUuid string, cycle int) (int64, error)
	// SumPerMemberByCycle returns member uuid -> total for a cycle.
	SumPerMemberByCycle(groupUuid string, cycle int) (map[string]int64, error)
}

// DistributionRepository accesses payout records.
type DistributionRepository interface {
	// Create persists a distribution.
	Create(dist *model.Distribution) error
	// FindByGroupUuid returns a group's distributions, oldest first.
	FindByGroupUuid(groupUuid string) ([]model.Distribution, error)
	// CountCompleted counts completed payouts to a recipient in a cycle.
	CountCompleted(groupUuid, recipientId string, cycle int) (int64, error)
}

// AuditRepository accesses the append-only audit trail.
type AuditRepository interface {
	// Create appends an event.
	Create(event *model.AuditEvent) error
	// FindByGroupUuid returns a group's trail in id order.
	FindByGroupUuid(groupUuid string) ([]model.AuditEvent, error)
}

// EscrowRepository accesses the fixed-target escrow backend.
type EscrowRepository interface {
	// CreatePool persists a new escrow pool.
	CreatePool(pool *model.EscrowPool) error
	// FindPoolByUuid returns a pool by uuid.
	FindPoolByUuid(uuid string) (*model.EscrowPool, error)
	// UpdatePool saves all pool fields.
	UpdatePool(pool *model.EscrowPool) error
	// FindContribution returns one contributor's balance row.
	FindContribution(poolUuid, userUuid string) (*model.EscrowContribution, error)
	// CreateContribution adds a contributor's balance row.
	CreateContribution(c *model.EscrowContribution) error
	// UpdateContribution saves all balance-row fields.
	UpdateContribution(c *model.EscrowContribution) error
	// ListContributions returns a pool's balance rows.
	ListContributions(poolUuid string) ([]model.EscrowContribution, error)
}

// Repositories aggregates all repository instances. The service layer
// receives this struct by injection and never touches gorm directly.
type Repositories struct {
	db           *gorm.DB
	User         UserRepository
	Group        GroupRepository
	GroupMember  GroupMemberRepository
	Contribution ContributionRepository
	Distribution DistributionRepository
	Audit        AuditRepository
	Escrow       EscrowRepository
}

// NewRepositories wires every repository onto the given gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		Group:        NewGroupRepository(db),
		GroupMember:  NewGroupMemberRepository(db),
		Contribution: NewContributionRepository(db),
		Distribution: NewDistributionRepository(db),
		Audit:        NewAuditRepository(db),
		Escrow:       NewEscrowRepository(db),
	}
}

// Transaction runs fn inside a database transaction. fn receives a
// Repositories view bound to the transaction; any error rolls everything
// back, so engine operations stay all-or-nothing.
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
