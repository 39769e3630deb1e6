package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/AleeDe/nafaverse/internal/client/repositories/credentials"
	"github.com/AleeDe/nafaverse/internal/logging"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

// CookieMaxAge is how long the mirrored credential cookies live.
const CookieMaxAge = 7 * 24 * time.Hour

// fragmentPage lifts a fragment-delivered token into the query string, since
// browsers never send the fragment to the server.
const fragmentPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>NafaVerse</title></head>
<body>
<script>
if (location.hash.length > 1) {
  location.replace(location.pathname + "?" + location.hash.substring(1));
}
</script>
<p>You can return to the terminal.</p>
</body></html>
`

// Listener is a loopback HTTP server that receives the OAuth redirect.
type Listener struct {
	address string
	handler *Handler
	store   credentials.Repository
	log     logging.Logger

	mu   sync.Mutex
	ln   net.Listener
	done chan struct{}
	once sync.Once
}

func NewListener(address string, h *Handler, store credentials.Repository, log logging.Logger) *Listener {
	return &Listener{
		address: address,
		handler: h,
		store:   store,
		log:     log.With("component", "oauth_listener"),
		done:    make(chan struct{}),
	}
}

// Listen binds the address. It is called by Run when needed; calling it
// first lets the caller learn the bound address.
func (l *Listener) Listen() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln != nil {
		return nil
	}
	ln, err := net.Listen("tcp", l.address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", l.address, err)
	}
	l.ln = ln
	return nil
}

// Addr is the bound address, or the configured one before Listen.
func (l *Listener) Addr() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln != nil {
		return l.ln.Addr().String()
	}
	return l.address
}

// CallbackURL is the URL the backend should redirect to.
func (l *Listener) CallbackURL() string {
	return "http://" + l.Addr() + "/auth/callback"
}

// Done is closed after the first successful callback.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}

// Router serves the callback paths.
func (l *Listener) Router() http.Handler {
	r := mux.NewRouter()
	for _, p := range CallbackPaths {
		r.HandleFunc(p, l.callback).Methods(http.MethodGet)
	}
	return r
}

// Run serves until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.Listen(); err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           l.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.log.Info(gctx, "waiting for oauth callback", "address", l.Addr())
		if err := srv.Serve(l.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		l.log.Debug(context.Background(), "stopping oauth listener")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (l *Listener) callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !l.handler.Handle(ctx, r.URL) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(fragmentPage))
		return
	}

	cred, err := l.store.Load(ctx)
	if err != nil {
		l.log.Warn(ctx, "load credentials for cookies", "error", err)
	}
	for name, value := range map[string]string{
		credentials.KeyToken:    cred.Token,
		credentials.KeyUsername: cred.Username,
		credentials.KeyEmail:    cred.Email,
	} {
		if value == "" {
			continue
		}
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			MaxAge:   int(CookieMaxAge.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	http.Redirect(w, r, "/", http.StatusFound)
	l.once.Do(func() { close(l.done) })
}
