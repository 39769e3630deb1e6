package session

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/AleeDe/nafaverse/internal/client/client"
	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/client/repositories/credentials"
	"github.com/AleeDe/nafaverse/internal/client/storage"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/AleeDe/nafaverse/internal/events"
	"github.com/AleeDe/nafaverse/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

type fakeNav struct {
	mu    sync.Mutex
	paths []string
}

func (n *fakeNav) Replace(_ context.Context, p string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, p)
}

type fakeAPI struct {
	mu    sync.Mutex
	calls int
	store credentials.Repository
	me    *client.UserInfo
	err   error
}

func (f *fakeAPI) Me(ctx context.Context) (*client.UserInfo, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if err := f.store.Save(ctx, models.Credential{Username: f.me.Username, Email: f.me.Email}); err != nil {
		return nil, err
	}
	return f.me, nil
}

func newStore(t *testing.T, path string) (*credentials.SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return credentials.NewSQLiteRepository(db), db
}

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestInitialState(t *testing.T) {
	s := New(Options{})
	st := s.Snapshot()
	assert.False(t, st.IsAuthenticated())
	assert.True(t, st.IsLoginMode)
	assert.Equal(t, English, st.Language)
	assert.Nil(t, st.User)
}

func TestRefreshFromStore_SelfHealsFromJWT(t *testing.T) {
	store, _ := newStore(t, ":memory:")
	ctx := context.Background()
	tok := token(t, jwt.MapClaims{"name": "Ali", "email": "ali@x.pk"})
	require.NoError(t, store.Set(ctx, credentials.KeyToken, tok))

	s := New(Options{Store: store, Bus: events.NewBus()})
	require.NoError(t, s.RefreshFromStore(ctx))
	require.NoError(t, s.RefreshFromStore(ctx))

	st := s.Snapshot()
	require.True(t, st.IsAuthenticated())
	assert.Equal(t, &models.User{Username: "Ali", Email: "ali@x.pk"}, st.User)

	cred, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ali", cred.Username)
	assert.Equal(t, "ali@x.pk", cred.Email)
}

func TestRefreshFromStore_OpaqueTokenKeepsStoredFields(t *testing.T) {
	store, _ := newStore(t, ":memory:")
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.Credential{Token: "opaque", Username: "u"}))

	s := New(Options{Store: store, Bus: events.NewBus()})
	require.NoError(t, s.RefreshFromStore(ctx))

	assert.Equal(t, &models.User{Username: "u"}, s.Snapshot().User)
}

func TestLogout_ClearsEverything(t *testing.T) {
	store, _ := newStore(t, ":memory:")
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.Credential{Token: "t", UserID: "1", Username: "u", Email: "e@x.pk"}))

	bus := events.NewBus()
	nav := &fakeNav{}
	s := New(Options{Store: store, Bus: bus, Nav: nav})
	require.NoError(t, s.Start(ctx))
	defer s.Close()

	s.SetDashboardOpen(true)
	s.OpenLogin(false)

	updated := 0
	defer bus.Subscribe(common.EventAuthUpdated, func(events.Event) { updated++ })()

	require.NoError(t, s.Logout(ctx))

	st := s.Snapshot()
	assert.False(t, st.IsAuthenticated())
	assert.Nil(t, st.User)
	assert.False(t, st.DashboardOpen)
	assert.False(t, st.LoginModalOpen)
	assert.True(t, st.IsLoginMode)
	assert.Equal(t, 1, updated)
	assert.Equal(t, []string{"/"}, nav.paths)

	for _, k := range credentials.Keys {
		v, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.Empty(t, v, k)
	}
}

func TestLogout_WhenAlreadyLoggedOut(t *testing.T) {
	store, _ := newStore(t, ":memory:")
	s := New(Options{Store: store, Bus: events.NewBus()})

	require.NoError(t, s.Logout(context.Background()))
	assert.False(t, s.IsAuthenticated())
}

func TestStart_ReactsToEvents(t *testing.T) {
	store, _ := newStore(t, ":memory:")
	ctx := context.Background()
	bus := events.NewBus()

	s := New(Options{Store: store, Bus: bus})
	require.NoError(t, s.Start(ctx))
	defer s.Close()
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, store.Save(ctx, models.Credential{Token: "t", Username: "u"}))
	bus.Emit(common.EventAuthUpdated, "test")
	assert.True(t, s.IsAuthenticated())

	require.NoError(t, store.Clear(ctx))
	bus.Emit(common.EventAuthUnauthorized, "test")
	st := s.Snapshot()
	assert.False(t, st.IsAuthenticated())
	assert.True(t, st.LoginModalOpen)
	assert.True(t, st.IsLoginMode)
}

func TestClose_Unsubscribes(t *testing.T) {
	store, _ := newStore(t, ":memory:")
	bus := events.NewBus()
	s := New(Options{Store: store, Bus: bus})
	require.NoError(t, s.Start(context.Background()))

	assert.Equal(t, 1, bus.Subscribers(common.EventAuthUpdated))
	s.Close()
	s.Close()
	assert.Zero(t, bus.Subscribers(common.EventAuthUpdated))
	assert.Zero(t, bus.Subscribers(common.EventAuthUnauthorized))
}

func TestBackfillIdentity_RunsOnce(t *testing.T) {
	store, _ := newStore(t, ":memory:")
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, credentials.KeyToken, "opaque"))

	api := &fakeAPI{store: store, me: &client.UserInfo{Username: "sara", Email: "s@x.pk"}}
	s := New(Options{Store: store, Bus: events.NewBus(), API: api})
	require.NoError(t, s.RefreshFromStore(ctx))

	s.BackfillIdentity(ctx)
	s.BackfillIdentity(ctx)

	assert.Equal(t, 1, api.calls)
	assert.Equal(t, &models.User{Username: "sara", Email: "s@x.pk"}, s.Snapshot().User)
}

func TestBackfillIdentity_RearmedByNewToken(t *testing.T) {
	store, _ := newStore(t, ":memory:")
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, credentials.KeyToken, "opaque"))

	api := &fakeAPI{store: store, me: &client.UserInfo{Username: "sara", Email: "s@x.pk"}}
	s := New(Options{Store: store, Bus: events.NewBus(), API: api})
	require.NoError(t, s.RefreshFromStore(ctx))
	s.BackfillIdentity(ctx)
	require.Equal(t, 1, api.calls)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Set(ctx, credentials.KeyToken, "opaque-2"))
	require.NoError(t, s.RefreshFromStore(ctx))
	api.me = &client.UserInfo{Username: "omar"}

	s.BackfillIdentity(ctx)
	assert.Equal(t, 2, api.calls)
	assert.Equal(t, "omar", s.Snapshot().User.Username)

	require.NoError(t, s.RefreshFromStore(ctx))
	s.BackfillIdentity(ctx)
	assert.Equal(t, 2, api.calls, "same token does not ask again")
}

func TestBackfillIdentity_SkippedWhenKnownOrSignedOut(t *testing.T) {
	store, _ := newStore(t, ":memory:")
	ctx := context.Background()
	api := &fakeAPI{store: store, err: errors.New("should not be called")}
	s := New(Options{Store: store, Bus: events.NewBus(), API: api})

	s.BackfillIdentity(ctx)
	assert.Zero(t, api.calls)

	require.NoError(t, store.Save(ctx, models.Credential{Token: "t", Email: "e@x.pk"}))
	require.NoError(t, s.RefreshFromStore(ctx))
	s.BackfillIdentity(ctx)
	assert.Zero(t, api.calls)
}

func TestBackfillIdentity_FailureIsSwallowed(t *testing.T) {
	store, _ := newStore(t, ":memory:")
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, credentials.KeyToken, "opaque"))
	api := &fakeAPI{store: store, err: common.ErrUnavailable}
	s := New(Options{Store: store, Bus: events.NewBus(), API: api, Log: logging.Discard()})
	require.NoError(t, s.RefreshFromStore(ctx))

	assert.NotPanics(t, func() { s.BackfillIdentity(ctx) })
	assert.Equal(t, 1, api.calls)
	assert.True(t, s.IsAuthenticated())
}

func TestUIMutators(t *testing.T) {
	s := New(Options{})

	s.OpenLogin(false)
	st := s.Snapshot()
	assert.True(t, st.LoginModalOpen)
	assert.False(t, st.IsLoginMode)

	s.OpenForgotPassword()
	st = s.Snapshot()
	assert.True(t, st.ForgotPasswordModalOpen)
	assert.False(t, st.LoginModalOpen)

	s.CloseForgotPassword()
	s.CloseLogin()
	st = s.Snapshot()
	assert.False(t, st.ForgotPasswordModalOpen)
	assert.False(t, st.LoginModalOpen)

	require.NoError(t, s.SetLanguage(Urdu))
	assert.Equal(t, Urdu, s.Snapshot().Language)
	require.ErrorIs(t, s.SetLanguage("fr"), common.ErrValidation)
}

func TestSnapshot_IsACopy(t *testing.T) {
	store, _ := newStore(t, ":memory:")
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.Credential{Token: "t", Username: "u"}))
	s := New(Options{Store: store, Bus: events.NewBus()})
	require.NoError(t, s.RefreshFromStore(ctx))

	st := s.Snapshot()
	st.User.Username = "mutated"
	assert.Equal(t, "u", s.Snapshot().User.Username)
}

func TestWatcher_PicksUpOtherWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.db")
	store, _ := newStore(t, path)
	other, _ := newStore(t, path)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(Options{Store: store, Bus: events.NewBus(), StorePath: path, Debounce: 20 * time.Millisecond})
	require.NoError(t, s.Start(ctx))
	defer s.Close()

	require.NoError(t, other.Save(ctx, models.Credential{Token: "from-other", Username: "x"}))

	assert.Eventually(t, s.IsAuthenticated, 3*time.Second, 20*time.Millisecond)
}
