// Package router registers the HTTP routes.
// This file defines the unauthenticated auth endpoints.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and token refresh. These
// are the only routes outside the JWT middleware.
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", rt.handlers.User.Register)
		authGroup.POST("/login", rt.handlers.User.Login)
		authGroup.POST("/refreshToken", rt.handlers.User.RefreshToken)
	}
}
