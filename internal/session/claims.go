package session

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the fields the users service puts in its JWTs.
type TokenClaims struct {
	UserID    string
	Username  string
	Role      string // raw "tipo"
	ExpiresAt time.Time
}

// ReadClaims decodes token claims without verifying the signature; the hotel
// service verifies tokens. Unreadable tokens give zero claims.
func ReadClaims(token string) TokenClaims {
	var out TokenClaims
	if token == "" {
		return out
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return out
	}
	switch v := claims["user_id"].(type) {
	case float64:
		out.UserID = strconv.FormatInt(int64(v), 10)
	case string:
		out.UserID = v
	}
	out.Username, _ = claims["username"].(string)
	out.Role, _ = claims["tipo"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out
}
