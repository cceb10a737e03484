// ABOUTME: Reads the expiry claim from JWT access tokens for display
// ABOUTME: Signature is not verified; the backend remains the authority

package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token is opaque or carries no exp claim
var ErrNoExpiry = errors.New("token has no readable expiry")

// TokenExpiry returns the exp claim of a JWT without verifying it
func TokenExpiry(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, ErrNoExpiry
	}

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, ErrNoExpiry
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}
