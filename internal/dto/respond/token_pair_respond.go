package respond

// TokenPairRespond carries a refreshed access/refresh token pair.
// Used by:
//   - internal/service/user/service.go: RefreshToken
type TokenPairRespond struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
