package schema

// Token is the credential pair issued by the identity provider. RefreshToken
// may be empty when the provider does not grant a renewal credential; such a
// session cannot self-renew and is logged out on the first expiry.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// Identity is the user record behind a session, confirmed by GET /auth/me.
type Identity struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// SignupRequest registers a new account.
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a renewal credential for a fresh access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
