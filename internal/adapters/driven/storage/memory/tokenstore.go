// Package memory provides in-memory implementations of the storage ports.
// Nothing survives the process; they exist for tests and throwaway runs.
package memory

import (
	"sync"

	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
)

// Ensure TokenStore implements the interface.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore holds the bearer token in memory.
type TokenStore struct {
	mu    sync.Mutex
	token string
}

// NewTokenStore creates an empty in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Save stores the token, replacing any previous one.
func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Load returns the stored token, or empty string when none exists.
func (s *TokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Clear removes the stored token.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
