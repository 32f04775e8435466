package service

import "strings"

// Identity is the verified caller identity extracted from a bearer token.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// DisplayName is the name stamped onto created recipes: the email local-part,
// matching what clients show next to a recipe.
func (i Identity) DisplayName() string {
	if at := strings.Index(i.Email, "@"); at > 0 {
		return i.Email[:at]
	}
	if i.Name != "" {
		return i.Name
	}
	return i.Email
}

// TokenVerifier turns a raw bearer token into an Identity. The production
// implementation is AuthService (HS256); tests substitute fakes.
type TokenVerifier interface {
	VerifyToken(raw string) (Identity, error)
}
