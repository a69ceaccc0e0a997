package domain

// Tokens is the bearer pair owned by the session authority.
// Both halves are required: a pair with one side missing is no session.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (t Tokens) Valid() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}
