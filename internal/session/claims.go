package session

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenInfo is what the client can read from a bearer token without the
// signing key. It is informational only; the API remains the judge of
// whether the token is still valid.
type TokenInfo struct {
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed at now.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// InspectToken decodes the claims of a JWT bearer token without verifying it.
func InspectToken(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("token is not a readable JWT: %w", err)
	}

	info := &TokenInfo{
		IssuedAt:  unixClaim(claims["iat"]),
		ExpiresAt: unixClaim(claims["exp"]),
	}
	if v, ok := claims["user_id"]; ok {
		info.UserID = fmt.Sprint(v)
	} else if v, ok := claims["sub"]; ok {
		info.UserID = fmt.Sprint(v)
	}
	if v, ok := claims["username"].(string); ok {
		info.Username = v
	}
	return info, nil
}

func unixClaim(v interface{}) time.Time {
	switch n := v.(type) {
	case float64:
		return time.Unix(int64(n), 0)
	case int64:
		return time.Unix(n, 0)
	default:
		return time.Time{}
	}
}
