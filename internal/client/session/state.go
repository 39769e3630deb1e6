// Package session holds the in-memory view of who is signed in and which
// interactive prompts are open, and keeps it in step with the persisted
// credential store.
package session

import (
	"fmt"
	"strings"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/common"
)

type Language string

const (
	English Language = "en"
	Urdu    Language = "ur"
)

// ParseLanguage accepts "en" or "ur" in any case.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case Urdu:
		return Urdu, nil
	}
	return "", fmt.Errorf("%w: unsupported language %q", common.ErrValidation, s)
}

// State is a copy of the session at one instant.
type State struct {
	Token string
	// User is nil while signed out.
	User *models.User

	LoginModalOpen          bool
	IsLoginMode             bool
	ForgotPasswordModalOpen bool
	DashboardOpen           bool
	Language                Language
}

func (s State) IsAuthenticated() bool {
	return s.Token != ""
}

func initialState() State {
	return State{IsLoginMode: true, Language: English}
}
