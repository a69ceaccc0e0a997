package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The client never holds the signing key: claims are read, not verified.
var parser = jwt.NewParser()

// ExpiresAt reads the exp claim of an access token.
// ok is false when the token is not a JWT or carries no expiry.
func ExpiresAt(accessToken string) (exp time.Time, ok bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// NeedsRefresh reports whether accessToken expires within skew of now.
// Opaque tokens never need a proactive refresh: the 401 path handles them.
func NeedsRefresh(accessToken string, skew time.Duration, now time.Time) bool {
	exp, ok := ExpiresAt(accessToken)
	if !ok {
		return false
	}
	return !now.Add(skew).Before(exp)
}
