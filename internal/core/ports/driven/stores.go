package driven

import "context"

// TokenStore persists the bearer credential across process restarts.
// The token survives until explicit logout or a server rejection.
type TokenStore interface {
	// Save stores the token, replacing any previous one.
	Save(token string) error

	// Load returns the persisted token, or empty string when none exists.
	Load() (string, error)

	// Clear removes the persisted token.
	Clear() error
}

// RecentStore persists the most-recently-visited page list.
// Entries are namespaced per user ID so accounts on a shared device do
// not see each other's history; unauthenticated visits are not tracked.
type RecentStore interface {
	// Touch records a visit, moving the page to the front of the user's
	// list and trimming it to the bound.
	Touch(ctx context.Context, userID, pageID int64) error

	// List returns the user's recently visited page IDs, newest first.
	List(ctx context.Context, userID int64) ([]int64, error)

	// Forget drops a page from every user's list, for deleted pages.
	Forget(ctx context.Context, pageID int64) error
}

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
