package client

import (
	"bytes"
	"encoding/json"
)

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// AuthResponse is returned by signup and login. Token is empty when the
// backend does not sign the user in.
type AuthResponse struct {
	Token    string   `json:"token"`
	ID       IDString `json:"id"`
	UserID   IDString `json:"userId"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Message  string   `json:"message"`
}

// UserInfo is the body of GET auth/me.
type UserInfo struct {
	ID       IDString `json:"id"`
	UserID   IDString `json:"userId"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
}

// IDString accepts a JSON string or number.
type IDString string

func (s *IDString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = IDString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = IDString(n.String())
	return nil
}

// firstID mirrors "id ?? userId".
func firstID(ids ...IDString) string {
	for _, id := range ids {
		if id != "" {
			return string(id)
		}
	}
	return ""
}
