package qrtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid QR session token")
	ErrTokenExpired = errors.New("QR session token has expired")
)

// SessionClaims represents the claims in a QR session token. A token binds a
// self-service ordering session to a single table.
type SessionClaims struct {
	Table string `json:"table"`
	jwt.RegisteredClaims
}

// Manager issues and validates QR session tokens
type Manager struct {
	secretKey []byte
	ttl       time.Duration
}

// NewManager creates a new QR session token manager
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secretKey: []byte(secret),
		ttl:       ttl,
	}
}

// Issue generates a signed session token for a table. The session ID goes
// into the jti claim so sessions stay distinguishable in logs.
func (m *Manager) Issue(table string) (token string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(m.ttl)
	claims := &SessionClaims{
		Table: table,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "dinepos-api",
			Subject:   table,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify validates a session token and returns its claims.
func (m *Manager) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Table == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
