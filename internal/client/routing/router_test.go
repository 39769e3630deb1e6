package routing

import (
	"context"
	"testing"

	"github.com/AleeDe/nafaverse/internal/client/client"
	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/client/repositories/credentials"
	"github.com/AleeDe/nafaverse/internal/client/storage"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/AleeDe/nafaverse/internal/events"
	"github.com/AleeDe/nafaverse/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct{ ok bool }

func (f *fakeAuth) IsAuthenticated() bool { return f.ok }

type fakePrompt struct {
	opened    int
	loginMode bool
}

func (f *fakePrompt) OpenLogin(loginMode bool) {
	f.opened++
	f.loginMode = loginMode
}

type fakeMe struct {
	calls int
	err   error
}

func (f *fakeMe) Me(context.Context) (*client.UserInfo, error) {
	f.calls++
	return &client.UserInfo{}, f.err
}

func newStore(t *testing.T) *credentials.SQLiteRepository {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return credentials.NewSQLiteRepository(db)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "/", Clean(""))
	assert.Equal(t, "/", Clean("/"))
	assert.Equal(t, "/account", Clean("account/"))
	assert.Equal(t, "/reset-password", Clean("/reset-password?token=x#y"))
}

func TestIsProtected(t *testing.T) {
	for _, p := range Protected {
		assert.True(t, IsProtected(p), p)
	}
	for _, p := range Public {
		assert.False(t, IsProtected(p), p)
	}
}

func TestGate_Simple(t *testing.T) {
	auth := &fakeAuth{}
	g := NewGate(auth, nil, nil, events.NewBus(), false, logging.Discard())
	ctx := context.Background()

	assert.Equal(t, Granted, g.Check(ctx, "/about"))
	assert.Equal(t, Denied, g.Check(ctx, "/account"))

	auth.ok = true
	assert.Equal(t, Granted, g.Check(ctx, "/account"))
}

func TestGate_StrictClearsStoreOnFailure(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.Credential{Token: "stale", Username: "u"}))

	bus := events.NewBus()
	updated := 0
	defer bus.Subscribe(common.EventAuthUpdated, func(events.Event) { updated++ })()

	me := &fakeMe{err: common.ErrUnavailable}
	g := NewGate(&fakeAuth{ok: true}, me, store, bus, true, logging.Discard())

	assert.Equal(t, Denied, g.Check(ctx, "/money-tracking"))
	assert.Equal(t, 1, me.calls)
	assert.Equal(t, 1, updated)

	m, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestGate_StrictGrants(t *testing.T) {
	me := &fakeMe{}
	g := NewGate(&fakeAuth{ok: true}, me, newStore(t), events.NewBus(), true, logging.Discard())

	assert.Equal(t, Granted, g.Check(context.Background(), "/grow-and-learn"))
	assert.Equal(t, Granted, g.Check(context.Background(), "/grow-and-learn"))
	assert.Equal(t, 2, me.calls, "verdict must not be cached")
}

func TestRouter_DeniedReplacesHistory(t *testing.T) {
	auth := &fakeAuth{}
	prompt := &fakePrompt{}
	r := NewRouter(NewGate(auth, nil, nil, events.NewBus(), false, logging.Discard()), prompt)
	ctx := context.Background()

	v, err := r.Navigate(ctx, "/about")
	require.NoError(t, err)
	assert.Equal(t, Granted, v)

	v, err = r.Navigate(ctx, "/goal-simulation")
	require.NoError(t, err)
	assert.Equal(t, Denied, v)
	assert.Equal(t, Home, r.Current())
	assert.Equal(t, 1, prompt.opened)
	assert.True(t, prompt.loginMode)
	assert.NotContains(t, r.History(), "/goal-simulation")

	assert.Equal(t, "/about", r.Back(ctx))
}

func TestRouter_ReevaluatesOnEveryNavigation(t *testing.T) {
	auth := &fakeAuth{ok: true}
	prompt := &fakePrompt{}
	r := NewRouter(NewGate(auth, nil, nil, events.NewBus(), false, logging.Discard()), prompt)
	ctx := context.Background()

	v, _ := r.Navigate(ctx, "/account")
	assert.Equal(t, Granted, v)
	_, _ = r.Navigate(ctx, "/about")

	auth.ok = false
	v, _ = r.Navigate(ctx, "/account")
	assert.Equal(t, Denied, v)
}

func TestRouter_BackIntoProtectedAfterLogout(t *testing.T) {
	auth := &fakeAuth{ok: true}
	prompt := &fakePrompt{}
	r := NewRouter(NewGate(auth, nil, nil, events.NewBus(), false, logging.Discard()), prompt)
	ctx := context.Background()

	_, _ = r.Navigate(ctx, "/account")
	_, _ = r.Navigate(ctx, "/about")
	auth.ok = false

	assert.Equal(t, Home, r.Back(ctx))
	assert.Equal(t, Home, r.Current())
	assert.Equal(t, 1, prompt.opened)
}

func TestRouter_UnknownPage(t *testing.T) {
	r := NewRouter(NewGate(&fakeAuth{}, nil, nil, events.NewBus(), false, logging.Discard()), nil)

	_, err := r.Navigate(context.Background(), "/nope")
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, []string{Home}, r.History())
}

func TestRouter_Replace(t *testing.T) {
	r := NewRouter(NewGate(&fakeAuth{}, nil, nil, events.NewBus(), false, logging.Discard()), nil)
	ctx := context.Background()
	_, _ = r.Navigate(ctx, "/contact")

	r.Replace(ctx, "/")
	assert.Equal(t, []string{Home, Home}, r.History())
	assert.Equal(t, Home, r.Back(ctx))
	assert.Equal(t, Home, r.Back(ctx))
}
