package client

import (
	"sync"

	"TASKTRACKER_BACK-END/internal/dto"
)

// SessionState describes what the client currently knows about its identity.
type SessionState int

const (
	// StateUnresolved means Restore has not completed yet.
	StateUnresolved SessionState = iota
	// StateAuthenticated means a server-verified identity is held.
	StateAuthenticated
	// StateUnauthenticated means no valid credential exists.
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unresolved"
	}
}

// Session is an observable holder of the client's identity. UI layers
// subscribe to transitions instead of embedding auth logic.
type Session struct {
	mu    sync.RWMutex
	state SessionState
	user  *dto.UserResponse
	subs  []func(SessionState)
}

// NewSession creates a session in the unresolved state.
func NewSession() *Session {
	return &Session{state: StateUnresolved}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the held identity, or nil unless authenticated.
func (s *Session) User() *dto.UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Subscribe registers a callback invoked on every state transition.
func (s *Session) Subscribe(fn func(SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Session) set(state SessionState, user *dto.UserResponse) {
	s.mu.Lock()
	changed := s.state != state
	s.state = state
	s.user = user
	subs := make([]func(SessionState), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if changed {
		for _, fn := range subs {
			fn(state)
		}
	}
}
