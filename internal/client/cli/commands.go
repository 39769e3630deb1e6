package cli

import (
	"context"
	"fmt"

	"github.com/AleeDe/nafaverse/internal/client/routing"
	"github.com/AleeDe/nafaverse/internal/client/session"
)

// Pages the member-only commands live on.
const (
	pagePlanner  = "/goal-simulation"
	pageTracker  = "/money-tracking"
	pageLearning = "/grow-and-learn"
	pageAccount  = "/account"
)

// Exec runs one REPL command.
func (a *App) Exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup", "register":
		return a.Signup(ctx)
	case "login":
		return a.Login(ctx)
	case "google":
		return a.Google(ctx, args)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "forgot":
		return a.ForgotPassword(ctx)
	case "reset":
		return a.ResetPassword(ctx, args)

	case "go":
		return a.Go(ctx, args)
	case "back":
		a.println(a.t(msgNowAt, a.router.Back(ctx)))
		return nil

	case "goal":
		return a.Goal(ctx)
	case "simulate":
		return a.Simulate(ctx)
	case "preview":
		return a.Preview(ctx)

	case "tx":
		return a.Tx(ctx, args)
	case "budget":
		return a.Budget(ctx, args)
	case "summary":
		return a.Summary(ctx)
	case "insights":
		return a.Insights(ctx)

	case "videos":
		return a.Videos(ctx)
	case "quiz":
		return a.Quiz(ctx, args)
	case "progress":
		return a.Progress(ctx)

	case "contact":
		return a.Contact(ctx)
	case "lang":
		return a.Lang(args)
	}
	return errUnknownCommand
}

// enter makes page the current page, or fails with errLoginRequired when
// the gate turns the visitor away.
func (a *App) enter(ctx context.Context, page string) error {
	if a.router.Current() != page {
		verdict, err := a.router.Navigate(ctx, page)
		if err != nil {
			return err
		}
		if verdict != routing.Granted {
			return errLoginRequired
		}
		return nil
	}

	if a.gate.Check(ctx, page) != routing.Granted {
		a.router.Replace(ctx, routing.Home)
		a.session.OpenLogin(true)
		return errLoginRequired
	}
	return nil
}

func (a *App) loginRequested() bool {
	if !a.session.Snapshot().LoginModalOpen {
		return false
	}
	a.session.CloseLogin()
	return true
}

// Go opens a page by path.
func (a *App) Go(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: go <path>")
		return nil
	}
	verdict, err := a.router.Navigate(ctx, args[0])
	if err != nil {
		return err
	}
	if verdict != routing.Granted {
		return errLoginRequired
	}
	a.println(a.t(msgNowAt, a.router.Current()))
	return nil
}

// Lang switches the message language.
func (a *App) Lang(args []string) error {
	if len(args) != 1 {
		a.println("Usage: lang en|ur")
		return nil
	}
	l, err := session.ParseLanguage(args[0])
	if err != nil {
		return err
	}
	if err := a.session.SetLanguage(l); err != nil {
		return err
	}
	a.println(a.t(msgLanguageSet))
	return nil
}

// Contact sends a feedback message. Name and email default to the
// signed-in user.
func (a *App) Contact(ctx context.Context) error {
	if err := a.enter(ctx, "/contact"); err != nil {
		return err
	}

	var defName, defEmail string
	if u := a.session.Snapshot().User; u != nil {
		defName, defEmail = u.Username, u.Email
	}

	name, err := a.textWithDefault("Your name", defName)
	if err != nil {
		return err
	}
	email, err := a.textWithDefault("Your email", defEmail)
	if err != nil {
		return err
	}
	msg, err := GetMultiline(a.reader, "Your message", a.out)
	if err != nil {
		return err
	}

	if err := a.contactService.Submit(ctx, name, email, msg); err != nil {
		return err
	}
	a.println(a.t(msgContactSent))
	return nil
}

func (a *App) textWithDefault(prompt, def string) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	s, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}
