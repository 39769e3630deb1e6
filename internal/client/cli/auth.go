package cli

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/AleeDe/nafaverse/internal/client/oauth"
	"github.com/AleeDe/nafaverse/internal/client/routing"
)

// googleWait bounds how long the google command waits for the browser.
const googleWait = 5 * time.Minute

// Signup prompts for a username, email and password and creates an account.
// On success the login prompt is opened in login mode.
func (a *App) Signup(ctx context.Context) error {
	a.session.OpenLogin(false)
	defer a.session.CloseLogin()

	username, err := GetSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Choose a password", a.out)
	if err != nil {
		return err
	}

	resp, err := a.authService.Signup(ctx, username, email, password)
	if err != nil {
		return credentialsError(err)
	}
	if resp != nil && resp.Message != "" {
		a.println(resp.Message)
	}
	a.println(a.t(msgSignedUp))
	return nil
}

// Login prompts for a username or email and a password. The session
// follows the auth event the service publishes, so nothing is stored here.
func (a *App) Login(ctx context.Context) error {
	a.session.OpenLogin(true)
	defer a.session.CloseLogin()

	identifier, err := GetSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	resp, err := a.authService.Login(ctx, identifier, password)
	if err != nil {
		return credentialsError(err)
	}
	if resp.Token == "" {
		a.println(a.t(msgLoggedInNoToken, resp.Message))
		return nil
	}
	a.println(a.t(msgLoggedIn, a.displayName(identifier)))
	return nil
}

// Google signs in through the browser. With an argument, the argument is
// taken as the callback URL the browser ended up on; otherwise a loopback
// listener waits for the redirect.
func (a *App) Google(ctx context.Context, args []string) error {
	if len(args) > 0 {
		u, err := url.Parse(strings.Join(args, ""))
		if err != nil {
			return err
		}
		if !a.oauth.Handle(ctx, u) {
			a.println(a.t(msgOAuthNoToken))
			return nil
		}
		a.session.BackfillIdentity(ctx)
		a.println(a.t(msgOAuthDone))
		return nil
	}

	l := oauth.NewListener(a.config.CallbackAddr, a.oauth, a.store, a.log)
	if err := l.Listen(); err != nil {
		return err
	}

	a.println(a.t(msgOAuthOpen, a.authService.GoogleLoginURL()))
	a.println(a.t(msgOAuthWaiting, l.CallbackURL()))

	wctx, cancel := context.WithTimeout(ctx, googleWait)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(wctx) }()

	var done bool
	select {
	case <-l.Done():
		done = true
	case <-wctx.Done():
	}
	cancel()
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		a.log.Warn(ctx, "oauth listener", "error", err)
	}

	if !done {
		a.println(a.t(msgOAuthTimeout))
		return nil
	}
	a.session.BackfillIdentity(ctx)
	a.println(a.t(msgOAuthDone))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.println(a.t(msgLoggedOut))
	return nil
}

// WhoAmI shows the account page. A session without a known identity asks
// the backend.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.enter(ctx, pageAccount); err != nil {
		return err
	}

	u := a.session.Snapshot().User
	if u == nil || (u.Username == "" && u.Email == "") {
		me, err := a.authService.Me(ctx)
		if err != nil {
			return err
		}
		a.printf("Username: %s\nEmail:    %s\n", me.Username, me.Email)
		return nil
	}
	a.printf("Username: %s\nEmail:    %s\n", u.Username, u.Email)
	return nil
}

func (a *App) ForgotPassword(ctx context.Context) error {
	if _, err := a.router.Navigate(ctx, "/forgot-password"); err != nil {
		return err
	}
	a.session.OpenForgotPassword()
	defer a.session.CloseForgotPassword()

	email, err := GetSimpleText(a.reader, "Enter the email of your account", a.out)
	if err != nil {
		return err
	}
	msg, err := a.authService.RequestPasswordReset(ctx, email)
	if err != nil {
		return err
	}
	if msg != "" {
		a.println(msg)
		return nil
	}
	a.println(a.t(msgResetSent))
	return nil
}

// ResetPassword sets a new password with the token from the reset email.
// The token may be given as an argument or pasted as a full reset link.
func (a *App) ResetPassword(ctx context.Context, args []string) error {
	if _, err := a.router.Navigate(ctx, "/reset-password"); err != nil {
		return err
	}

	token := ""
	if len(args) > 0 {
		token = args[0]
	} else {
		var err error
		if token, err = GetSimpleText(a.reader, "Paste the reset token or link", a.out); err != nil {
			return err
		}
	}
	token = tokenFromLink(token)

	password, err := GetPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.reader, "Repeat new password", a.out)
	if err != nil {
		return err
	}

	msg, err := a.authService.ResetPassword(ctx, token, password, confirm)
	if err != nil {
		return err
	}
	if msg != "" {
		a.println(msg)
	} else {
		a.println(a.t(msgPasswordUpdated))
	}
	a.router.Replace(ctx, routing.Home)
	a.session.OpenLogin(true)
	return nil
}

// tokenFromLink extracts ?token= from a pasted reset link.
func tokenFromLink(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return s
	}
	if t := u.Query().Get("token"); t != "" {
		return t
	}
	return s
}

func (a *App) displayName(fallback string) string {
	if u := a.session.Snapshot().User; u != nil {
		if u.Username != "" {
			return u.Username
		}
		if u.Email != "" {
			return u.Email
		}
	}
	return fallback
}
