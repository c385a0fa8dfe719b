package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history [page-id]", historyCmd.Use)
}

func TestHistoryCmd_ListsVersions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "7"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "v12")
	assert.Contains(t, buf.String(), "by alice - fix typo")
	// The older version has no comment, so no trailing dash.
	assert.Contains(t, buf.String(), "by bob\n")
}

func TestHistoryCmd_RequiresPageID(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDiffCmd_Use(t *testing.T) {
	assert.Equal(t, "diff [page-id] [older-version] [newer-version]", diffCmd.Use)
}

func TestDiffCmd_RendersPrefixedLines(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"diff", "7", "11", "12"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "  # Welcome\n")
	assert.Contains(t, buf.String(), "- Old line.\n")
	assert.Contains(t, buf.String(), "+ New line.\n")
}

func TestDiffCmd_AcceptsZeroAsOlderVersion(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"diff", "7", "0", "12"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
}

func TestDiffCmd_RequiresThreeArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"diff", "7", "11"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 3 arg(s)")
}

func TestRenderDiffLine(t *testing.T) {
	assert.Equal(t, "+ hi", renderDiffLine(domain.DiffLine{Kind: domain.DiffAdded, Text: "hi"}))
	assert.Equal(t, "- hi", renderDiffLine(domain.DiffLine{Kind: domain.DiffRemoved, Text: "hi"}))
	assert.Equal(t, "  hi", renderDiffLine(domain.DiffLine{Kind: domain.DiffUnchanged, Text: "hi"}))
}

func TestRestoreCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"restore", "7", "11"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Restored page #7 to version 11")
}
