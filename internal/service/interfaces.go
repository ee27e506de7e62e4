// Package service defines the business-layer interfaces consumed by the
// handler layer. Implementations live in the per-domain subpackages.
package service

import (
	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/dto/respond"
	"susu_ledger_server/internal/infrastructure/mq"
)

// UserService handles accounts and authentication.
type UserService interface {
	// Register creates an account and returns its first token pair.
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login authenticates by email and password.
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken exchanges a valid refresh token for a new pair.
	RefreshToken(refreshToken string) (*respond.TokenPairRespond, error)
}

// GroupService handles group lifecycle, membership and number selection.
// Mutating operations run under the group's lock.
type GroupService interface {
	// CreateGroup creates a group with the caller as creator and first member.
	CreateGroup(creatorId string, req request.CreateGroupRequest) (*respond.GroupInfoRespond, error)
	// AddMember adds a user to the group. Creator only.
	AddMember(callerId string, req request.AddMemberRequest) error
	// JoinGroup adds the caller to the group.
	JoinGroup(callerId, groupId string) error
	// LeaveGroup removes the caller. The creator cannot leave.
	LeaveGroup(callerId, groupId string) error
	// DeleteGroup retires the group. Creator only; records are kept.
	DeleteGroup(callerId, groupId string) error
	// UpdateGroup changes name and description. Creator only.
	UpdateGroup(callerId string, req request.UpdateGroupRequest) error
	// SelectNumber claims a rotation number for the caller.
	SelectNumber(callerId string, req request.SelectNumberRequest) error
	// GetGroupInfo returns the group's public view.
	GetGroupInfo(groupId string) (*respond.GroupInfoRespond, error)
	// GetGroupMemberList returns members with profile fields.
	GetGroupMemberList(groupId string) ([]respond.GroupMemberRespond, error)
	// ListMyGroups returns every group the user belongs to.
	ListMyGroups(userId string) ([]respond.GroupInfoRespond, error)
}

// LedgerService handles the append-only contribution ledger.
type LedgerService interface {
	// RecordContribution appends a payment by the caller for the current cycle.
	RecordContribution(callerId string, req request.RecordContributionRequest) error
	// ApplySettlement records a payment confirmed by the settlement pipeline.
	ApplySettlement(fc mq.FundsConfirmation) error
	// GetContributionTotal returns one member's total for a cycle
	// (cycle <= 0 means the current one).
	GetContributionTotal(groupId, memberId string, cycle int) (*respond.ContributionTotalRespond, error)
	// GetCycleSummary reconciles a cycle across all members.
	GetCycleSummary(groupId string, cycle int) (*respond.CycleSummaryRespond, error)
}

// RotationService handles pot payouts and cycle rollover.
type RotationService interface {
	// Distribute pays the pot to one member; when everyone has received,
	// the same transaction rolls the cycle over. Creator only.
	Distribute(callerId string, req request.DistributeRequest) (*respond.DistributionRespond, error)
	// GetDistributions returns a group's payout history, oldest first.
	GetDistributions(groupId string) ([]respond.DistributionRespond, error)
}

// AuditService reads the append-only event trail.
type AuditService interface {
	// GetGroupTrail returns a group's events in recorded order.
	GetGroupTrail(groupId string) ([]respond.AuditEventRespond, error)
}

// EscrowService handles fixed-target escrow pools, the alternative backend
// for groups that hold funds before the rotation starts.
type EscrowService interface {
	// CreateEscrow opens a pool with a target amount and deadline.
	CreateEscrow(creatorId string, req request.CreateEscrowRequest) (*respond.EscrowInfoRespond, error)
	// Contribute deposits into an open pool.
	Contribute(callerId string, req request.EscrowContributeRequest) error
	// Withdraw pays out: the creator collects a funded pool, a contributor
	// reclaims their deposit from a failed one.
	Withdraw(callerId string, req request.EscrowWithdrawRequest) (int64, error)
	// GetEscrowInfo returns the pool's public view.
	GetEscrowInfo(poolId string) (*respond.EscrowInfoRespond, error)
	// GetMyContribution returns one contributor's balance.
	GetMyContribution(poolId, userId string) (*respond.EscrowContributionRespond, error)
}
