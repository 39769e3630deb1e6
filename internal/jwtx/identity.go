// Package jwtx reads display identity out of a bearer token without
// verifying it. The token is opaque to the client; anything it fails to
// decode is treated as "no identity".
package jwtx

import (
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the subset of claims the client shows to the user.
type Identity struct {
	Username string
	Email    string
}

var usernameClaims = []string{"username", "name", "preferred_username", "sub"}

// Decode parses the payload of token. It returns nil for anything that is
// not a well-formed JWT or carries neither a username nor an email claim.
func Decode(token string) *Identity {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	// Only the payload is read; the header may name any algorithm or none.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}
	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil
	}

	id := &Identity{
		Username: firstString(claims, usernameClaims...),
		Email:    firstString(claims, "email"),
	}
	if id.Username == "" && id.Email == "" {
		return nil
	}
	return id
}

func firstString(claims jwt.MapClaims, names ...string) string {
	for _, n := range names {
		if s, ok := claims[n].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
