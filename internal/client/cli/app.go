package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/AleeDe/nafaverse/internal/client/client"
	"github.com/AleeDe/nafaverse/internal/client/config"
	"github.com/AleeDe/nafaverse/internal/client/oauth"
	"github.com/AleeDe/nafaverse/internal/client/repositories/budgets"
	"github.com/AleeDe/nafaverse/internal/client/repositories/credentials"
	"github.com/AleeDe/nafaverse/internal/client/repositories/progress"
	"github.com/AleeDe/nafaverse/internal/client/repositories/transactions"
	"github.com/AleeDe/nafaverse/internal/client/routing"
	"github.com/AleeDe/nafaverse/internal/client/services"
	"github.com/AleeDe/nafaverse/internal/client/session"
	"github.com/AleeDe/nafaverse/internal/client/storage"
	"github.com/AleeDe/nafaverse/internal/events"
	"github.com/AleeDe/nafaverse/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	bus     *events.Bus
	store   credentials.Repository
	api     client.Client
	session *session.Session
	gate    *routing.Gate
	router  *routing.Router
	oauth   *oauth.Handler

	authService     services.AuthService
	planService     services.PlanService
	contactService  services.ContactService
	trackerService  services.TrackerService
	learningService services.LearningService

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database and wires every client component.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := credentials.NewSQLiteRepository(db)
	bus := events.NewBus()

	api, err := client.NewHTTPClient(client.Options{
		BaseURL:        c.BaseURL,
		Timeout:        c.Timeout,
		GoogleLoginURL: c.GoogleLoginURL,
	}, store, bus, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sess := session.New(session.Options{
		Store:     store,
		Bus:       bus,
		API:       api,
		Log:       log,
		StorePath: c.DatabasePath,
	})
	gate := routing.NewGate(sess, api, store, bus, c.StrictRoutes, log)
	router := routing.NewRouter(gate, sess)
	sess.SetNavigator(router)

	return &App{
		config:  c,
		log:     log.With("component", "cli"),
		db:      db,
		bus:     bus,
		store:   store,
		api:     api,
		session: sess,
		gate:    gate,
		router:  router,
		oauth:   oauth.NewHandler(store, bus, router, log),

		authService:     services.NewAuthService(api, bus, sess, log),
		planService:     services.NewPlanService(api, log),
		contactService:  services.NewContactService(api),
		trackerService:  services.NewTrackerService(transactions.NewSQLiteRepository(db), budgets.NewSQLiteRepository(db), log),
		learningService: services.NewLearningService(progress.NewSQLiteRepository(db), log),

		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run starts the session and blocks in the REPL until the user exits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Start(ctx); err != nil {
		return err
	}
	defer a.session.Close()

	a.session.BackfillIdentity(ctx)

	a.println(a.t(msgWelcome))
	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) lang() session.Language {
	return a.session.Snapshot().Language
}

func (a *App) t(m message, args ...any) string {
	return translate(a.lang(), m, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// status is shown in the prompt: the signed-in user and the current page.
func (a *App) status() string {
	st := a.session.Snapshot()
	s := ""
	if st.User != nil && st.User.Username != "" {
		s = st.User.Username + " "
	} else if st.IsAuthenticated() {
		s = "* "
	}
	return fmt.Sprintf("(%s%s)", s, a.router.Current())
}
