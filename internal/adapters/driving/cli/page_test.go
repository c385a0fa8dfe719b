package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCmd_Use(t *testing.T) {
	assert.Equal(t, "page", pageCmd.Use)
}

func TestPageCmd_HasSubcommands(t *testing.T) {
	commands := pageCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "update")
	assert.Contains(t, commandNames, "delete")
}

// Page List Tests

func TestPageListCmd_RendersTree(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"page", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "- Getting Started (#7, getting-started)")
	// Child is indented and private.
	assert.Contains(t, buf.String(), "  - Installation (#8, installation) [private]")
}

func TestPageListCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"page", "list", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		pageListJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"Title\": \"Getting Started\"")
}

func TestPageListCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	pageService = &mockPageServiceError{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"page", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "listing pages")
}

// Page Get Tests

func TestPageGetCmd_Use(t *testing.T) {
	assert.Equal(t, "get [id-or-slug]", pageGetCmd.Use)
}

func TestPageGetCmd_ShowsPageAndRecordsVisit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	recent := &mockRecentService{}
	recentService = recent

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"page", "get", "getting-started"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "# Getting Started")
	assert.Contains(t, buf.String(), "author: alice")
	assert.Contains(t, buf.String(), "First steps.")
	assert.Equal(t, []int64{7}, recent.recorded)
}

func TestPageGetCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"page", "get"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

// Page Create Tests

func TestPageCreateCmd_RequiresTitle(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"page", "create", "-c", "body"})
	defer func() {
		rootCmd.SetArgs(nil)
		pageCreateContent = ""
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestPageCreateCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"page", "create", "-t", "New Page", "-c", "body"})
	defer func() {
		rootCmd.SetArgs(nil)
		pageCreateTitle = ""
		pageCreateContent = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Created page #42 (new-page)")
}

func TestPageCreateCmd_ContentFromFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "content.md")
	require.NoError(t, os.WriteFile(path, []byte("# From file"), 0o644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"page", "create", "-t", "New Page", "-f", path})
	defer func() {
		rootCmd.SetArgs(nil)
		pageCreateTitle = ""
		pageCreateFile = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Created page")
}

func TestPageCreateCmd_ContentAndFileAreExclusive(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"page", "create", "-t", "New Page", "-c", "body", "-f", "somefile.md"})
	defer func() {
		rootCmd.SetArgs(nil)
		pageCreateTitle = ""
		pageCreateContent = ""
		pageCreateFile = ""
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

// Page Update Tests

func TestPageUpdateCmd_SetsCommentAndVisibility(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	pages := &mockPageService{}
	pageService = pages

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"page", "update", "7", "-t", "Renamed", "-c", "new body", "-m", "rename", "--public", "false"})
	defer func() {
		rootCmd.SetArgs(nil)
		pageUpdateTitle = ""
		pageUpdateContent = ""
		pageUpdateComment = ""
		pageUpdatePublic = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Updated page #7")
	require.NotNil(t, pages.lastUpdate.VersionComment)
	assert.Equal(t, "rename", *pages.lastUpdate.VersionComment)
	require.NotNil(t, pages.lastUpdate.IsPublic)
	assert.False(t, *pages.lastUpdate.IsPublic)
}

func TestPageUpdateCmd_LeavesUnsetFieldsNil(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	pages := &mockPageService{}
	pageService = pages

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"page", "update", "7", "-t", "Renamed", "-c", "new body"})
	defer func() {
		rootCmd.SetArgs(nil)
		pageUpdateTitle = ""
		pageUpdateContent = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Nil(t, pages.lastUpdate.VersionComment)
	assert.Nil(t, pages.lastUpdate.IsPublic)
}

func TestPageUpdateCmd_RejectsBadVisibility(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"page", "update", "7", "-t", "Renamed", "--public", "maybe"})
	defer func() {
		rootCmd.SetArgs(nil)
		pageUpdateTitle = ""
		pageUpdatePublic = ""
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--public must be true or false")
}

// Page Delete Tests

func TestPageDeleteCmd_DeletesAndPrunesRecent(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	pages := &mockPageService{}
	recent := &mockRecentService{}
	pageService = pages
	recentService = recent

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"page", "delete", "7"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Deleted page #7")
	assert.Equal(t, int64(7), pages.deletedID)
	assert.Equal(t, []int64{7}, recent.forgotten)
}

func TestPageDeleteCmd_RejectsNonNumericID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"page", "delete", "not-a-number"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "page ID must be numeric")
}
