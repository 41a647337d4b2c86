// Package guard gates protected views on the session state.
//
// Rendering and navigation are separate steps: Render is a pure function of
// the state, while Observe performs the redirect side effect. A redirect is
// never issued while the session is still resolving.
package guard

import (
	"context"
	"sync"

	"nutrition/internal/session"
)

const DefaultRedirect = "/login"

type Phase int

const (
	Resolving Phase = iota
	Authorized
	Denied
)

func (p Phase) String() string {
	switch p {
	case Resolving:
		return "resolving"
	case Authorized:
		return "authorized"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// PhaseOf maps a session state onto the guard's three phases.
func PhaseOf(st session.State) Phase {
	switch {
	case st.Loading:
		return Resolving
	case st.IsAuthenticated:
		return Authorized
	default:
		return Denied
	}
}

// View tells the caller what to draw for a phase.
type View int

const (
	ViewPlaceholder View = iota
	ViewChildren
	ViewNothing
)

// Navigator performs a client-side navigation.
type Navigator interface {
	Navigate(target string)
}

type NavigatorFunc func(target string)

func (f NavigatorFunc) Navigate(target string) { f(target) }

type Guard struct {
	nav    Navigator
	target string

	mu         sync.Mutex
	redirected bool
}

type Option func(*Guard)

// WithRedirect overrides the navigation target for denied visitors.
func WithRedirect(target string) Option {
	return func(g *Guard) {
		if target != "" {
			g.target = target
		}
	}
}

func New(nav Navigator, opts ...Option) *Guard {
	g := &Guard{nav: nav, target: DefaultRedirect}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Guard) Target() string { return g.target }

// Render picks the view for st without side effects.
func (g *Guard) Render(st session.State) View {
	switch PhaseOf(st) {
	case Authorized:
		return ViewChildren
	case Denied:
		return ViewNothing
	default:
		return ViewPlaceholder
	}
}

// Observe applies the redirect side effect for st. Entering Denied navigates
// once; any other phase re-arms the guard. It reports whether it navigated.
func (g *Guard) Observe(st session.State) bool {
	g.mu.Lock()
	phase := PhaseOf(st)
	if phase != Denied {
		g.redirected = false
		g.mu.Unlock()
		return false
	}
	if g.redirected {
		g.mu.Unlock()
		return false
	}
	g.redirected = true
	g.mu.Unlock()

	g.nav.Navigate(g.target)
	return true
}

// Watch observes the store's current state and every later change until ctx
// is done. It returns the last state seen.
func (g *Guard) Watch(ctx context.Context, store *session.Store) session.State {
	updates, cancel := store.Subscribe()
	defer cancel()

	last := store.State()
	g.Observe(last)

	for {
		select {
		case <-ctx.Done():
			return last
		case st, ok := <-updates:
			if !ok {
				return last
			}
			last = st
			g.Observe(st)
		}
	}
}
