// Package auth issues and verifies the signed tokens that carry a caller's
// identity and role between requests.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in token claims
const (
	RolePatient  = "patient"
	RoleHospital = "hospital"
)

// Claims are the token claims issued at login. Subject holds the internal
// patient or hospital ID; MedicardID and HospitalName are set according to
// the role.
type Claims struct {
	jwt.RegisteredClaims
	Role         string `json:"role"`
	MedicardID   string `json:"medicardId,omitempty"`
	HospitalName string `json:"hospitalName,omitempty"`
}

// NewToken signs a token for the given claims, valid for the given duration
func NewToken(secret string, validity time.Duration, claims Claims) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(validity))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies a signed token and returns its claims
func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
