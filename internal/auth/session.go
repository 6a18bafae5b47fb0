package auth

import (
	"fmt"
	"sync"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
)

type State string

const (
	StateUnknown         State = "unknown"
	StateChecking        State = "checking"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Session is the single source of truth for who is acting in a request.
// It only changes through Begin, Authenticate, Reject and End.
type Session struct {
	mu      sync.RWMutex
	state   State
	user    *models.AdminUser
	tokenID string
}

func NewSession() *Session {
	return &Session{state: StateUnknown}
}

type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid session transition %s -> %s", e.From, e.To)
}

// Begin moves an unknown session into checking.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUnknown {
		return &TransitionError{From: s.state, To: StateChecking}
	}
	s.state = StateChecking
	return nil
}

// Authenticate records the verified user and token id.
func (s *Session) Authenticate(user *models.AdminUser, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateChecking {
		return &TransitionError{From: s.state, To: StateAuthenticated}
	}
	if user == nil {
		return fmt.Errorf("authenticate: nil user")
	}
	s.state = StateAuthenticated
	s.user = user
	s.tokenID = tokenID
	return nil
}

// Reject ends a check that failed.
func (s *Session) Reject() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateChecking {
		return &TransitionError{From: s.state, To: StateUnauthenticated}
	}
	s.state = StateUnauthenticated
	return nil
}

// End logs out an authenticated session, on explicit logout or expiry.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return &TransitionError{From: s.state, To: StateUnauthenticated}
	}
	s.state = StateUnauthenticated
	s.user = nil
	s.tokenID = ""
	return nil
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the authenticated user, or nil.
func (s *Session) User() *models.AdminUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) TokenID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokenID
}

// HasPermission checks the session user against the role hierarchy.
// Sessions that are not authenticated fail closed.
func (s *Session) HasPermission(required models.Role) bool {
	if s == nil {
		return false
	}
	return HasPermission(s.User(), required)
}
