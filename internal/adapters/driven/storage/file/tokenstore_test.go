package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewTokenStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Save("jwt-abc123"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc123", token)
}

func TestTokenStore_Load_NoFile(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewTokenStore(tmpDir)
	require.NoError(t, err)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestTokenStore_SaveOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewTokenStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Save("first"))
	require.NoError(t, store.Save("second"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestTokenStore_Clear(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewTokenStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Save("jwt-abc123"))
	require.NoError(t, store.Clear())

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))

	// Clearing again is fine.
	require.NoError(t, store.Clear())
}

func TestTokenStore_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewTokenStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Save("jwt-abc123"))

	info, err := os.Stat(filepath.Join(tmpDir, "token.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestTokenStore_SurvivesRestart(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewTokenStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Save("persisted"))

	store2, err := NewTokenStore(tmpDir)
	require.NoError(t, err)

	token, err := store2.Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}
