package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	cases := map[ViewType]string{
		ViewLogin:   "login",
		ViewMenu:    "menu",
		ViewTree:    "tree",
		ViewPage:    "page",
		ViewEditor:  "editor",
		ViewHistory: "history",
		ViewSearch:  "search",
		ViewAdmin:   "admin",
		ViewHelp:    "help",
	}

	for view, want := range cases {
		assert.Equal(t, want, view.String())
	}

	assert.Equal(t, "unknown", ViewType(42).String())
}
