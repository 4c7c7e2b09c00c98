package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the signed session cookie. SessionID
// refers to the server-side session registry entry; a token is only
// valid while that entry exists.
type SessionClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates session cookie tokens.
type TokenManager struct {
	secretKey []byte
	algorithm jwt.SigningMethod
}

// NewTokenManager creates a token manager using HMAC-SHA256.
func NewTokenManager(secretKey string) *TokenManager {
	return &TokenManager{
		secretKey: []byte(secretKey),
		algorithm: jwt.SigningMethodHS256,
	}
}

// GenerateToken signs a session token with the given lifetime.
func (t *TokenManager) GenerateToken(userID uint, username, sessionID string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:    userID,
		Username:  username,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(t.algorithm, claims)
	return token.SignedString(t.secretKey)
}

// ValidateToken checks the signature and expiry of a session token.
func (t *TokenManager) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != t.algorithm {
			return nil, errors.New("unexpected signing method")
		}
		return t.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
