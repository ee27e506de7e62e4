// Package router registers the HTTP routes. This file is the entry point;
// per-module routes live in their own files.
package router

import (
	"github.com/gin-gonic/gin"

	"susu_ledger_server/internal/handler"
	"susu_ledger_server/internal/infrastructure/middleware"
)

// Router holds the handler aggregate and registers routes onto an engine.
type Router struct {
	handlers *handler.Handlers
}

// NewRouter creates the route registrar.
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes wires all modules. Everything except /auth sits behind JWT
// authentication.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterAuthRoutes(r)

	api := r.Group("/", middleware.JWTAuth())
	rt.RegisterGroupRoutes(api)
	rt.RegisterLedgerRoutes(api)
	rt.RegisterRotationRoutes(api)
	rt.RegisterAuditRoutes(api)
	rt.RegisterEscrowRoutes(api)
}
