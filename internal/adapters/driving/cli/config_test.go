package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sovatiano/wiki-app/internal/adapters/driven/config/file"
)

func setupTestConfig(t *testing.T) func() {
	t.Helper()

	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	oldStore := configStore
	configStore = store
	return func() {
		configStore = oldStore
	}
}

func TestConfigCmd_HasSubcommands(t *testing.T) {
	commands := configCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "set")
}

func TestConfigSetCmd_PersistsValue(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "server.url", "https://wiki.example.com"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Set server.url = https://wiki.example.com")
	assert.Equal(t, "https://wiki.example.com", configStore.GetString(file.KeyServerURL))
}

func TestConfigGetCmd_PrintsValue(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	require.NoError(t, configStore.Set(file.KeyServerURL, "https://wiki.example.com"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "get", "server.url"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "https://wiki.example.com")
}

func TestConfigGetCmd_UnsetKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "get", "server.url"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "is not set")
}

func TestConfigShowCmd_ListsKnownKeys(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	require.NoError(t, configStore.Set(file.KeyServerURL, "https://wiki.example.com"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "server.url = https://wiki.example.com")
	assert.Contains(t, buf.String(), "pages.popular_limit = (not set)")
	assert.Contains(t, buf.String(), "Config file:")
}

func TestConfigCmd_StoreNotConfigured(t *testing.T) {
	oldStore := configStore
	configStore = nil
	defer func() {
		configStore = oldStore
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config store not configured")
}
