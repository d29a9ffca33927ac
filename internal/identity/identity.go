// Package identity derives the signed-in user's identity from the hosted
// auth access token.
package identity

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated user as seen by the app: the auth subject
// plus the metadata the profile defaults are built from.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	FullName *string // from user metadata, nil when never set
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// FromAccessToken decodes the identity carried in an access token issued
// by the hosted auth. The signature is not re-verified here: verification
// happened at issue time and on every backend call; this side only reads
// claims.
func FromAccessToken(token string) (Identity, error) {
	var c tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Identity{}, fmt.Errorf("parse access token: %w", err)
	}
	if c.Subject == "" {
		return Identity{}, errors.New("access token has no subject")
	}
	uid, err := uuid.FromString(c.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("access token subject is not a user id: %w", err)
	}
	ident := Identity{UserID: uid, Email: c.Email}
	if v, ok := c.UserMetadata["full_name"].(string); ok && v != "" {
		ident.FullName = &v
	}
	return ident, nil
}
