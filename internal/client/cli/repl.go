package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AleeDe/nafaverse/internal/client/session"
)

// errUnknownCommand is returned by Exec for a command it does not know.
var errUnknownCommand = errors.New("unknown command")

// commander is the command surface the REPL needs. The real App satisfies
// it; tests provide a lightweight stub.
type commander interface {
	Exec(ctx context.Context, cmd string, args []string) error
	// loginRequested reports, and clears, a pending request to sign in.
	loginRequested() bool
	lang() session.Language
}

// runREPL reads one command per line from in and dispatches it to a. It
// exits on EOF, on "exit" or "quit", or when ctx is cancelled.
//
// Command errors are printed in the user's language; the loop never stops
// because of them.
func runREPL(ctx context.Context, a commander, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "nafa %s> ", statusFn())

		line, err := readLine(ctx, in)
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			fmt.Fprint(out, helpText)
			continue
		case "exit", "quit":
			fmt.Fprintln(out, translate(a.lang(), msgBye))
			return
		}

		err = a.Exec(ctx, cmd, args)
		switch {
		case errors.Is(err, errUnknownCommand):
			fmt.Fprintln(out, translate(a.lang(), msgUnknownCommand, cmd))
		case err != nil:
			fmt.Fprintln(out, renderError(err, a.lang()))
		}
		if a.loginRequested() {
			fmt.Fprintln(out, translate(a.lang(), msgLoginHint))
		}
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine reads the next line from in, giving up when ctx is done. The
// reader is only touched by one goroutine at a time: a read abandoned on
// cancellation is never followed by another.
func readLine(ctx context.Context, in *bufio.Reader) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := in.ReadString('\n')
		ch <- lineResult{line, err}
	}()

	select {
	case r := <-ch:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

const helpText = `Account:
  signup                     create an account
  login                      sign in with username or email
  google [callback url]      sign in with Google
  logout                     sign out
  whoami                     show the signed-in user
  forgot                     request a password reset email
  reset [token]              set a new password
Pages:
  go <path>                  open a page (/, /about, /contact, /goal-simulation, ...)
  back                       go to the previous page
Planner:
  goal                       plan for a goal
  simulate                   simulate an investment
  preview                    estimate a monthly saving offline
Tracker:
  tx add | tx list | tx delete <id>
  budget set [category limit] | budget list
  summary                    totals and the last seven days
  insights                   tips from your spending
Learn:
  videos                     list lessons
  quiz <video id>            take a lesson quiz
  progress                   completed lessons
Other:
  contact                    send us a message
  lang en|ur                 switch language
  help                       show this text
  exit                       leave the program
`
