package models

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token is expired")

// Claims defines the structure of the JWT claims
type Claims struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// Expired reports whether the claims carry no expiry or one at or before now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt == nil || !c.ExpiresAt.After(now)
}

// CheckExpiry returns ErrTokenExpired when the claims are not usable at now.
func (c *Claims) CheckExpiry(now time.Time) error {
	if c.Expired(now) {
		return ErrTokenExpired
	}
	return nil
}
