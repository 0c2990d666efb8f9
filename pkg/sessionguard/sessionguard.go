// Package sessionguard provides the token that lets in-flight asynchronous
// responses detect that they belong to a superseded conversation. Starting a
// new chat refreshes the token; a completion whose captured token no longer
// matches must discard its result instead of mutating shared state.
package sessionguard

import (
	"sync"

	"github.com/google/uuid"
)

type Token = uuid.UUID

// Guard must be used as a pointer so the mutex is never copied.
type Guard struct {
	mu      sync.Mutex
	current Token
}

func New() *Guard {
	return &Guard{current: uuid.New()}
}

// Current returns the live token. Callers capture it before dispatching an
// asynchronous request.
func (g *Guard) Current() Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Refresh installs a new distinct token and returns it. Called exactly once
// per conversation reset.
func (g *Guard) Refresh() Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = uuid.New()
	return g.current
}

// IsStale reports whether a captured token has been superseded.
func (g *Guard) IsStale(captured Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return captured != g.current
}
