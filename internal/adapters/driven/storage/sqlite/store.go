package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Sovatiano/wiki-app/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
)

// recentLimit bounds each user's recently-visited list.
const recentLimit = 5

// Store is the SQLite-backed client-side state database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the state database under dataDir.
// If dataDir is empty, defaults to ~/.wiki/state.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".wiki")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "state.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RecentStore returns a RecentStore interface backed by this store.
func (s *Store) RecentStore() driven.RecentStore {
	return &recentStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Recent Store ====================

// recentStore implements driven.RecentStore.
type recentStore struct {
	store *Store
}

var _ driven.RecentStore = (*recentStore)(nil)

// Touch records a visit. Re-visiting a page moves it to the front; the
// list is then trimmed to the bound so old entries fall off the end.
func (s *recentStore) Touch(ctx context.Context, userID, pageID int64) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recent_pages (user_id, page_id, visited_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, page_id) DO UPDATE SET
			visited_at = excluded.visited_at
	`, userID, pageID, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM recent_pages
		WHERE user_id = ? AND page_id NOT IN (
			SELECT page_id FROM recent_pages
			WHERE user_id = ?
			ORDER BY visited_at DESC
			LIMIT ?
		)
	`, userID, userID, recentLimit)
	if err != nil {
		return fmt.Errorf("trimming visits: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// List returns the user's recently visited page IDs, newest first.
func (s *recentStore) List(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT page_id FROM recent_pages
		WHERE user_id = ?
		ORDER BY visited_at DESC
		LIMIT ?
	`, userID, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("querying visits: %w", err)
	}
	defer rows.Close()

	var pageIDs []int64 //nolint:prealloc // size unknown from query
	for rows.Next() {
		var pageID int64
		if err := rows.Scan(&pageID); err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		pageIDs = append(pageIDs, pageID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visits: %w", err)
	}

	return pageIDs, nil
}

// Forget drops a page from every user's list, for deleted pages.
func (s *recentStore) Forget(ctx context.Context, pageID int64) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM recent_pages WHERE page_id = ?", pageID)
	if err != nil {
		return fmt.Errorf("forgetting page: %w", err)
	}
	return nil
}
