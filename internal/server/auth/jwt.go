// Package auth implements the session token codec: signed, time-limited
// bearer tokens carrying the user identity. Tokens are self-contained and
// never persisted server-side; invalidation is only via expiry.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/teamboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims embeds the registered claims plus the user identity fields the
// auth gate needs to re-resolve the caller.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// GenerateToken produces a signed HS256 token embedding the user id and
// username with the given validity window.
func GenerateToken(userID int64, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:   userID,
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString and returns
// its claims. Expired tokens yield common.ErrTokenExpired; any other
// verification failure yields common.ErrInvalidToken. Re-verifying an
// expired token never succeeds.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
