package respond

// RegisterRespond carries the new account's identity and token pair.
// Used by:
//   - internal/service/user/service.go: Register
type RegisterRespond struct {
	Uuid         string `json:"uuid"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
