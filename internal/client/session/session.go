package session

import (
	"context"
	"sync"
	"time"

	"github.com/AleeDe/nafaverse/internal/client/client"
	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/client/repositories/credentials"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/AleeDe/nafaverse/internal/events"
	"github.com/AleeDe/nafaverse/internal/filex"
	"github.com/AleeDe/nafaverse/internal/jwtx"
	"github.com/AleeDe/nafaverse/internal/logging"
)

// Navigator replaces the current location without adding history.
type Navigator interface {
	Replace(ctx context.Context, path string)
}

// IdentityFetcher is the part of the API client the session needs.
type IdentityFetcher interface {
	Me(ctx context.Context) (*client.UserInfo, error)
}

type Options struct {
	Store credentials.Repository
	Bus   *events.Bus
	API   IdentityFetcher
	Nav   Navigator
	Log   logging.Logger

	// StorePath is the database file to watch for changes made by other
	// processes. Empty or in-memory paths disable watching.
	StorePath string
	Debounce  time.Duration
}

type Session struct {
	mu    sync.Mutex
	state State

	store credentials.Repository
	bus   *events.Bus
	api   IdentityFetcher
	nav   Navigator
	log   logging.Logger

	storePath string
	debounce  time.Duration
	watcher   *storeWatcher
	unsubs    []func()

	backfilled bool
}

func New(opts Options) *Session {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &Session{
		state:     initialState(),
		store:     opts.Store,
		bus:       opts.Bus,
		api:       opts.API,
		nav:       opts.Nav,
		log:       log.With("component", "session"),
		storePath: opts.StorePath,
		debounce:  debounce,
	}
}

// SetNavigator wires the navigator after construction, for callers whose
// router itself depends on the session.
func (s *Session) SetNavigator(nav Navigator) {
	s.mu.Lock()
	s.nav = nav
	s.mu.Unlock()
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func (s *Session) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

// Start loads the persisted credentials, subscribes to auth events and, for
// a file-backed store, watches the file for writes from other processes.
func (s *Session) Start(ctx context.Context) error {
	if err := s.RefreshFromStore(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.unsubs = append(s.unsubs,
		s.bus.Subscribe(common.EventAuthUpdated, func(events.Event) {
			if err := s.RefreshFromStore(ctx); err != nil {
				s.log.Warn(ctx, "refresh after auth update", "error", err)
			}
		}),
		s.bus.Subscribe(common.EventAuthUnauthorized, func(events.Event) {
			if err := s.RefreshFromStore(ctx); err != nil {
				s.log.Warn(ctx, "refresh after unauthorized", "error", err)
			}
			s.OpenLogin(true)
		}),
	)
	s.mu.Unlock()

	if s.storePath == "" || filex.IsInMemory(s.storePath) {
		return nil
	}

	w, err := newStoreWatcher(s.storePath, s.debounce, func() {
		if err := s.RefreshFromStore(ctx); err != nil {
			s.log.Warn(ctx, "refresh after store change", "error", err)
		}
	}, s.log)
	if err != nil {
		s.log.Warn(ctx, "store watcher disabled", "error", err)
		return nil
	}
	w.Start(ctx)

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()
	return nil
}

// Close undoes Start. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
	if w != nil {
		w.Stop()
	}
}

// RefreshFromStore re-reads the persisted credentials. When a token is held
// but the display identity is incomplete, it is derived from the token and
// written back.
func (s *Session) RefreshFromStore(ctx context.Context) error {
	cred, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	if cred.Token != "" && (cred.Username == "" || cred.Email == "") {
		if id := jwtx.Decode(cred.Token); id != nil {
			healed := models.Credential{}
			if cred.Username == "" && id.Username != "" {
				healed.Username, cred.Username = id.Username, id.Username
			}
			if cred.Email == "" && id.Email != "" {
				healed.Email, cred.Email = id.Email, id.Email
			}
			if healed.HasIdentity() {
				if err := s.store.Save(ctx, healed); err != nil {
					s.log.Warn(ctx, "write back identity", "error", err)
				}
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Token != cred.Token {
		s.backfilled = false
	}
	s.state.Token = cred.Token
	if cred.Token == "" {
		s.state.User = nil
		return nil
	}
	s.state.User = &models.User{Username: cred.Username, Email: cred.Email}
	return nil
}

// Logout forgets the user everywhere and returns to the home route.
func (s *Session) Logout(ctx context.Context) error {
	var clearErr error
	for _, k := range credentials.Keys {
		if err := s.store.Delete(ctx, k); err != nil && clearErr == nil {
			clearErr = err
		}
	}

	s.mu.Lock()
	s.state.Token = ""
	s.state.User = nil
	s.state.DashboardOpen = false
	s.state.LoginModalOpen = false
	s.state.IsLoginMode = true
	nav := s.nav
	s.mu.Unlock()

	s.bus.Emit(common.EventAuthUpdated, "logout")
	if nav != nil {
		nav.Replace(ctx, "/")
	}
	s.log.Info(ctx, "logged out")
	return clearErr
}

// BackfillIdentity asks the backend who the user is when a token is held
// but nothing about the user is known. It runs at most once per token.
func (s *Session) BackfillIdentity(ctx context.Context) {
	s.mu.Lock()
	st := s.state
	need := !s.backfilled && st.Token != "" && (st.User == nil || (st.User.Username == "" && st.User.Email == ""))
	if need {
		s.backfilled = true
	}
	s.mu.Unlock()

	if !need || s.api == nil {
		return
	}
	if _, err := s.api.Me(ctx); err != nil {
		s.log.Warn(ctx, "identity backfill failed", "error", err)
		return
	}
	if err := s.RefreshFromStore(ctx); err != nil {
		s.log.Warn(ctx, "refresh after backfill", "error", err)
	}
}

func (s *Session) OpenLogin(loginMode bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LoginModalOpen = true
	s.state.IsLoginMode = loginMode
	s.state.ForgotPasswordModalOpen = false
}

func (s *Session) CloseLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LoginModalOpen = false
}

func (s *Session) OpenForgotPassword() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ForgotPasswordModalOpen = true
	s.state.LoginModalOpen = false
	s.state.IsLoginMode = true
}

func (s *Session) CloseForgotPassword() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ForgotPasswordModalOpen = false
}

func (s *Session) SetDashboardOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DashboardOpen = open
}

func (s *Session) SetLanguage(l Language) error {
	if _, err := ParseLanguage(string(l)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Language = l
	return nil
}
