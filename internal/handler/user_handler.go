// Package handler provides the HTTP request handlers.
// This file handles account and authentication endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/service"
)

// UserHandler handles account requests.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates the account handler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register creates an account.
// POST /auth/register
// Body: request.RegisterRequest
// Data: respond.RegisterRespond
func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Login authenticates by email and password.
// POST /auth/login
// Body: request.LoginRequest
// Data: respond.LoginRespond
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RefreshToken rotates the token pair.
// POST /auth/refreshToken
// Body: request.RefreshTokenRequest
// Data: respond.TokenPairRespond
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.RefreshToken(req.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
