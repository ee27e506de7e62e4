package respond

// LoginRespond carries the authenticated profile and token pair.
// Used by:
//   - internal/service/user/service.go: Login
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
