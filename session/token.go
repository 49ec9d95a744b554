package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"campus/models"
)

// DecodeToken reads a JWT without verifying its signature. The client has
// no key and only needs the expiry; identity always comes from the backend.
// The typed claims are filled when the payload matches them and left zero
// otherwise, so a token is malformed only when it cannot be parsed or its
// exp is not a number.
func DecodeToken(token string) (*models.Claims, error) {
	p := jwt.NewParser()

	raw := jwt.MapClaims{}
	if _, _, err := p.ParseUnverified(token, raw); err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	exp, err := raw.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("decoding token expiry: %w", err)
	}

	claims := &models.Claims{}
	if _, _, err := p.ParseUnverified(token, claims); err != nil {
		claims = &models.Claims{}
	}
	claims.ExpiresAt = exp
	return claims, nil
}
