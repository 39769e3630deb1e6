package client

import (
	"net/http"

	"github.com/AleeDe/nafaverse/internal/client/repositories/credentials"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/AleeDe/nafaverse/internal/events"
	"github.com/AleeDe/nafaverse/internal/logging"
)

// authTransport attaches the persisted bearer token and reacts to 401.
type authTransport struct {
	base  http.RoundTripper
	store credentials.Repository
	bus   *events.Bus
	log   logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.store.Get(ctx, credentials.KeyToken)
	if err != nil {
		t.log.Warn(ctx, "read token", "error", err)
	}
	if token != "" {
		req = req.Clone(ctx)
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := t.store.Clear(ctx); err != nil {
			t.log.Error(ctx, "clear credentials after 401", "error", err)
		}
		t.log.Info(ctx, "session rejected by server", "path", req.URL.Path)
		t.bus.Emit(common.EventAuthUnauthorized, "api")
	}
	return resp, nil
}
