package request

// RegisterRequest registers a new account.
// Used by:
//   - internal/handler/user_handler.go: Register
//   - internal/service/user/service.go: Register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required,min=2,max=32"`
	Password string `json:"password" binding:"required,min=6"`
}
