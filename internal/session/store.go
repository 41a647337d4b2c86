// Package session holds the client-side view of the visitor's authentication
// state and broadcasts every change to subscribers.
//
// A Store starts in the loading state. Refresh resolves it through the
// Backend; SignOut invalidates the remote session and then clears the local
// state no matter how the remote call ended.
package session

import (
	"context"
	"sync"
)

// UserInfo is an immutable snapshot of the signed-in user.
type UserInfo struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"name"`
}

// State is replaced wholesale on every transition.
type State struct {
	User            *UserInfo
	IsAuthenticated bool
	Loading         bool
}

var (
	loadingState   = State{Loading: true}
	signedOutState = State{}
)

// Backend is the server the session is resolved against.
type Backend interface {
	// Status returns the current user, or nil when not authenticated.
	Status(ctx context.Context) (*UserInfo, error)
	Logout(ctx context.Context) error
}

type Store struct {
	backend Backend

	mu     sync.RWMutex
	state  State
	gen    uint64 // bumped by SignOut; stale Refresh results are dropped
	subs   map[int]chan State
	nextID int
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		state:   loadingState,
		subs:    make(map[int]chan State),
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Refresh resolves the session. Errors leave the store signed out. A result
// that arrives after a SignOut started is discarded.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	user, err := s.backend.Status(ctx)

	next := signedOutState
	if err == nil && user != nil {
		snapshot := *user
		next = State{User: &snapshot, IsAuthenticated: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.publish(next)
	}
	return err
}

// SignOut runs the remote logout, then clears local state unconditionally.
// The remote error, if any, is returned after the state is cleared.
func (s *Store) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()

	err := s.invalidateRemote(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.publish(signedOutState)
	return err
}

func (s *Store) invalidateRemote(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &remotePanicError{value: r}
		}
	}()
	return s.backend.Logout(ctx)
}

// Subscribe returns a channel that receives every later state. The channel
// keeps only the most recent undelivered state. Call cancel to stop.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// publish must be called with mu held.
func (s *Store) publish(next State) {
	s.state = next
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}
