// Package handler provides the HTTP request handlers. This file defines the
// aggregate and its constructor; services are injected rather than reached
// for globally, so handlers are testable with stubs.
package handler

import (
	"susu_ledger_server/internal/service"
)

// Handlers aggregates all handler instances for the router layer.
type Handlers struct {
	User     *UserHandler
	Group    *GroupHandler
	Ledger   *LedgerHandler
	Rotation *RotationHandler
	Audit    *AuditHandler
	Escrow   *EscrowHandler
}

// NewHandlers creates every handler with its service dependency.
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		User:     NewUserHandler(svc.User),
		Group:    NewGroupHandler(svc.Group),
		Ledger:   NewLedgerHandler(svc.Ledger),
		Rotation: NewRotationHandler(svc.Rotation),
		Audit:    NewAuditHandler(svc.Audit),
		Escrow:   NewEscrowHandler(svc.Escrow),
	}
}
