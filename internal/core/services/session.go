package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
	"github.com/Sovatiano/wiki-app/internal/logger"
)

// Ensure SessionService implements the driving port.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService holds the authenticated principal and bearer credential.
// It is also the API client's token source: every outgoing request reads
// the current token here, and an unauthorized server response calls
// Invalidate to clear both the in-memory session and the persisted token.
type SessionService struct {
	mu      sync.RWMutex
	session domain.Session

	auth   driven.AuthAPI
	tokens driven.TokenStore
	cache  *QueryCache
}

// NewSessionService creates a session service. The cache, when set, is
// reset whenever the identity changes so one user's results never leak
// into another's session.
func NewSessionService(auth driven.AuthAPI, tokens driven.TokenStore, cache *QueryCache) *SessionService {
	return &SessionService{
		auth:   auth,
		tokens: tokens,
		cache:  cache,
	}
}

// Login authenticates and persists the bearer token on success.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	s.setPending(true)
	defer s.setPending(false)

	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.mu.Lock()
		s.session.LastErr = err
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.session.Token = token
	s.session.LastErr = nil
	s.mu.Unlock()

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.clearLocked()
		return nil, fmt.Errorf("resolving user after login: %w", err)
	}

	s.mu.Lock()
	s.session.User = user
	s.mu.Unlock()

	if err := s.tokens.Save(token); err != nil {
		logger.Warn("persisting token: %v", err)
	}
	if s.cache != nil {
		s.cache.Reset()
	}

	logger.Info("logged in as %s", user.Username)
	return user, nil
}

// Register creates a new account. It does not log in.
func (s *SessionService) Register(ctx context.Context, username, email, password string) error {
	return s.auth.Register(ctx, username, email, password)
}

// Logout clears the in-memory session and the persisted token.
func (s *SessionService) Logout() error {
	s.clearLocked()
	if s.cache != nil {
		s.cache.Reset()
	}
	return nil
}

// Current returns a snapshot of the session state.
func (s *SessionService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Resume restores a session from a persisted token at startup. The user
// is resolved exactly once; any failure clears the token rather than
// retrying, treating it as expired.
func (s *SessionService) Resume(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		return fmt.Errorf("loading persisted token: %w", err)
	}
	if token == "" {
		return nil
	}

	s.mu.Lock()
	s.session.Token = token
	s.mu.Unlock()

	s.setPending(true)
	defer s.setPending(false)

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		logger.Debug("persisted token rejected: %v", err)
		s.clearLocked()
		return err
	}

	s.mu.Lock()
	s.session.User = user
	s.mu.Unlock()
	return nil
}

// Token returns the current bearer token, falling back to the persisted
// store when the in-memory session has none. It satisfies the API
// client's TokenSource.
func (s *SessionService) Token() string {
	s.mu.RLock()
	token := s.session.Token
	s.mu.RUnlock()
	if token != "" {
		return token
	}
	token, err := s.tokens.Load()
	if err != nil {
		return ""
	}
	return token
}

// Invalidate clears the session after the server rejected the credential.
// The API adapter calls this on every unauthorized response, making
// session expiry a cross-cutting concern rather than per-call handling.
func (s *SessionService) Invalidate() {
	logger.Info("credential rejected by server, clearing session")
	s.clearLocked()
	if s.cache != nil {
		s.cache.Reset()
	}
}

func (s *SessionService) clearLocked() {
	s.mu.Lock()
	s.session = domain.Session{}
	s.mu.Unlock()
	if err := s.tokens.Clear(); err != nil {
		logger.Warn("clearing persisted token: %v", err)
	}
}

func (s *SessionService) setPending(pending bool) {
	s.mu.Lock()
	s.session.Pending = pending
	s.mu.Unlock()
}
