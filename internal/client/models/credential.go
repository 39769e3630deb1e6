// Package models defines the client-side data models.
package models

// Credential is what the client persists about the signed-in user. Only
// Token decides whether the user is authenticated; the other fields are
// best-effort display data.
type Credential struct {
	Token    string
	UserID   string
	Username string
	Email    string
}

// IsAuthenticated reports whether a token is held.
func (c Credential) IsAuthenticated() bool {
	return c.Token != ""
}

// HasIdentity reports whether any display field is known.
func (c Credential) HasIdentity() bool {
	return c.Username != "" || c.Email != ""
}

// User is the display identity shown for a session.
type User struct {
	Username string
	Email    string
}
