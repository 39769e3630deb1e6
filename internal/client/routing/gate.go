package routing

import (
	"context"

	"github.com/AleeDe/nafaverse/internal/client/client"
	"github.com/AleeDe/nafaverse/internal/client/repositories/credentials"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/AleeDe/nafaverse/internal/events"
	"github.com/AleeDe/nafaverse/internal/logging"
)

type Verdict int

const (
	Checking Verdict = iota
	Granted
	Denied
)

func (v Verdict) String() string {
	switch v {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "checking"
	}
}

// AuthState reports whether a session is held.
type AuthState interface {
	IsAuthenticated() bool
}

// IdentityFetcher validates the held token against the backend.
type IdentityFetcher interface {
	Me(ctx context.Context) (*client.UserInfo, error)
}

// Gate decides whether a page may be shown. In strict mode a held token is
// also confirmed with the backend, and a rejected token is wiped.
type Gate struct {
	auth   AuthState
	api    IdentityFetcher
	store  credentials.Repository
	bus    *events.Bus
	strict bool
	log    logging.Logger
}

func NewGate(auth AuthState, api IdentityFetcher, store credentials.Repository, bus *events.Bus, strict bool, log logging.Logger) *Gate {
	return &Gate{auth: auth, api: api, store: store, bus: bus, strict: strict, log: log.With("component", "gate")}
}

// Check always evaluates afresh; verdicts are never cached.
func (g *Gate) Check(ctx context.Context, path string) Verdict {
	if !IsProtected(path) {
		return Granted
	}
	if !g.auth.IsAuthenticated() {
		return Denied
	}
	if !g.strict || g.api == nil {
		return Granted
	}

	if _, err := g.api.Me(ctx); err != nil {
		g.log.Info(ctx, "session check failed", "path", path, "error", err)
		if err := g.store.Clear(ctx); err != nil {
			g.log.Error(ctx, "clear credentials", "error", err)
		}
		g.bus.Emit(common.EventAuthUpdated, "gate")
		return Denied
	}
	return Granted
}
