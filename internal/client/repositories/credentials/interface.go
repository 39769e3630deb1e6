// Package credentials persists the signed-in user's token and display
// identity as a small key/value table.
package credentials

import (
	"context"

	"github.com/AleeDe/nafaverse/internal/client/models"
)

const (
	KeyToken    = "token"
	KeyUserID   = "userId"
	KeyUsername = "username"
	KeyEmail    = "email"
)

// Keys lists every credential key.
var Keys = []string{KeyToken, KeyUserID, KeyUsername, KeyEmail}

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error

	Load(ctx context.Context) (models.Credential, error)
	// Save writes the non-empty fields of c and leaves the rest untouched.
	Save(ctx context.Context, c models.Credential) error
}
