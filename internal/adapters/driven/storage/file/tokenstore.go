// Package file persists the bearer token to the local filesystem so a
// login survives process restarts.
package file

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
)

// Ensure TokenStore implements the interface.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore keeps the bearer token in a TOML file, mode 0600.
// The token is an opaque credential; nothing here inspects it.
type TokenStore struct {
	filePath string
}

// tokenFile is the on-disk layout of token.toml.
type tokenFile struct {
	Token string `toml:"token"`
}

// NewTokenStore creates a token store under configDir.
// If configDir is empty, defaults to ~/.wiki/token.toml.
func NewTokenStore(configDir string) (*TokenStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".wiki")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &TokenStore{filePath: filepath.Join(configDir, "token.toml")}, nil
}

// Save stores the token, replacing any previous one.
func (s *TokenStore) Save(token string) error {
	data, err := toml.Marshal(tokenFile{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Load returns the persisted token, or empty string when none exists.
func (s *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var f tokenFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return "", err
	}
	return f.Token, nil
}

// Clear removes the persisted token. Clearing an absent token is not an
// error; logout must be idempotent.
func (s *TokenStore) Clear() error {
	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the token file path.
func (s *TokenStore) Path() string {
	return s.filePath
}
