// Package service provides the business layer. This file handles dependency
// injection and aggregation.
package service

import (
	"susu_ledger_server/internal/dao/mysql/repository"
	myredis "susu_ledger_server/internal/dao/redis"
	"susu_ledger_server/internal/infrastructure/mq"
	"susu_ledger_server/internal/lock"
	"susu_ledger_server/internal/service/audit"
	"susu_ledger_server/internal/service/escrow"
	"susu_ledger_server/internal/service/group"
	"susu_ledger_server/internal/service/ledger"
	"susu_ledger_server/internal/service/rotation"
	"susu_ledger_server/internal/service/user"
)

// Services aggregates all service instances; the handler layer accesses
// them through service.Svc.
type Services struct {
	User     UserService
	Group    GroupService
	Ledger   LedgerService
	Rotation RotationService
	Audit    AuditService
	Escrow   EscrowService
}

// NewServices wires every service onto the repositories, cache, per-group
// locker and settlement broker.
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService,
	locker lock.GroupLocker, broker mq.SettlementBroker) *Services {
	return &Services{
		User:     user.NewUserService(repos, cache),
		Group:    group.NewGroupService(repos, cache, locker),
		Ledger:   ledger.NewLedgerService(repos, locker),
		Rotation: rotation.NewRotationService(repos, cache, locker, broker),
		Audit:    audit.NewAuditService(repos),
		Escrow:   escrow.NewEscrowService(repos, locker),
	}
}

// Svc is the global Services instance, set by InitServices in main.
var Svc *Services

// InitServices initializes the global instance. Call after the repository
// layer is up.
func InitServices(repos *repository.Repositories, cache myredis.AsyncCacheService,
	locker lock.GroupLocker, broker mq.SettlementBroker) {
	Svc = NewServices(repos, cache, locker, broker)
}
