package account

import (
	"fmt"
	"time"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/golang-jwt/jwt/v4"
)

// TokenIssuer mints the bearer token a successful login hands out.
type TokenIssuer interface {
	Issue(userID db.UUID) (string, error)
}

type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// compile-time check: *JWTManager must satisfy TokenIssuer
var _ TokenIssuer = (*JWTManager)(nil)

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

func (m *JWTManager) Issue(userID db.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}
	return signed, nil
}
