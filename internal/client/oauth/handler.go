// Package oauth completes the Google sign-in flow: it accepts the callback
// URL the backend redirects to, persists the delivered token and tells the
// rest of the client that the session changed.
package oauth

import (
	"context"
	"net/url"
	"strings"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/client/repositories/credentials"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/AleeDe/nafaverse/internal/events"
	"github.com/AleeDe/nafaverse/internal/jwtx"
	"github.com/AleeDe/nafaverse/internal/logging"
)

// CallbackPaths are the only paths a callback is accepted on.
var CallbackPaths = []string{"/", "/auth/callback", "/oauth/callback"}

// Navigator replaces the current location without adding history.
type Navigator interface {
	Replace(ctx context.Context, path string)
}

type Handler struct {
	store credentials.Repository
	bus   *events.Bus
	nav   Navigator
	log   logging.Logger
}

// NewHandler builds a Handler. nav may be nil when there is nothing to
// navigate.
func NewHandler(store credentials.Repository, bus *events.Bus, nav Navigator, log logging.Logger) *Handler {
	return &Handler{store: store, bus: bus, nav: nav, log: log.With("component", "oauth")}
}

// Handle processes u and reports whether it was a callback carrying a token.
// It never mutates storage for a path outside CallbackPaths, and running it
// twice on the same URL leaves storage as one run does.
func (h *Handler) Handle(ctx context.Context, u *url.URL) bool {
	if u == nil || !allowed(u.Path) {
		return false
	}

	query := u.Query()
	fragment, _ := url.ParseQuery(strings.TrimPrefix(u.Fragment, "#"))
	get := func(keys ...string) string {
		for _, k := range keys {
			if v := query.Get(k); v != "" {
				return v
			}
			if v := fragment.Get(k); v != "" {
				return v
			}
		}
		return ""
	}

	token := get("token")
	if token == "" {
		return false
	}

	cred := models.Credential{
		Token:    token,
		UserID:   get("id", "userId"),
		Username: get("name", "username"),
		Email:    get("email"),
	}
	if cred.Username == "" || cred.Email == "" {
		if id := jwtx.Decode(token); id != nil {
			if cred.Username == "" {
				cred.Username = id.Username
			}
			if cred.Email == "" {
				cred.Email = id.Email
			}
		}
	}

	if err := h.store.Save(ctx, cred); err != nil {
		h.log.Error(ctx, "persist oauth credentials", "error", err)
		return false
	}

	h.log.Info(ctx, "signed in with google", "username", cred.Username)
	h.bus.Emit(common.EventAuthUpdated, "oauth")
	if h.nav != nil {
		h.nav.Replace(ctx, "/")
	}
	return true
}

func allowed(path string) bool {
	if path == "" {
		path = "/"
	}
	for _, p := range CallbackPaths {
		if p == path {
			return true
		}
	}
	return false
}
