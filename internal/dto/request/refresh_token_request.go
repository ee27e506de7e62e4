package request

// RefreshTokenRequest exchanges a refresh token for a new token pair.
// Used by:
//   - internal/handler/user_handler.go: RefreshToken
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
