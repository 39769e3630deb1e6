package routing

import (
	"context"
	"fmt"
	"sync"

	"github.com/AleeDe/nafaverse/internal/common"
)

// LoginPrompter opens the login prompt.
type LoginPrompter interface {
	OpenLogin(loginMode bool)
}

// Router is a page history with a gate in front of protected pages.
type Router struct {
	mu      sync.Mutex
	history []string

	gate   *Gate
	prompt LoginPrompter
}

func NewRouter(gate *Gate, prompt LoginPrompter) *Router {
	return &Router{history: []string{Home}, gate: gate, prompt: prompt}
}

// Navigate moves to path. A denied protected page opens the login prompt
// and lands on Home in place of the page, so going back skips it.
func (r *Router) Navigate(ctx context.Context, path string) (Verdict, error) {
	p := Clean(path)
	if !Known(p) {
		return Denied, fmt.Errorf("%w: page %s", common.ErrNotFound, p)
	}

	verdict := r.gate.Check(ctx, p)

	r.mu.Lock()
	r.history = append(r.history, p)
	if verdict == Denied {
		r.history[len(r.history)-1] = Home
	}
	r.mu.Unlock()

	if verdict == Denied && r.prompt != nil {
		r.prompt.OpenLogin(true)
	}
	return verdict, nil
}

// Replace swaps the current entry for path.
func (r *Router) Replace(_ context.Context, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history[len(r.history)-1] = Clean(path)
}

// Back steps to the previous entry and re-checks it; a page that is no
// longer allowed is replaced with Home.
func (r *Router) Back(ctx context.Context) string {
	r.mu.Lock()
	if len(r.history) > 1 {
		r.history = r.history[:len(r.history)-1]
	}
	cur := r.history[len(r.history)-1]
	r.mu.Unlock()

	if r.gate.Check(ctx, cur) == Denied {
		r.Replace(ctx, Home)
		if r.prompt != nil {
			r.prompt.OpenLogin(true)
		}
		return Home
	}
	return cur
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

// History returns a copy of the entries, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}
