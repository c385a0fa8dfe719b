package memory

import (
	"context"
	"sync"

	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
)

// recentLimit bounds each user's recently-visited list, matching the
// persistent store.
const recentLimit = 5

// Ensure RecentStore implements the interface.
var _ driven.RecentStore = (*RecentStore)(nil)

// RecentStore keeps recently-visited page lists in memory, newest first.
type RecentStore struct {
	mu     sync.Mutex
	byUser map[int64][]int64
}

// NewRecentStore creates an empty in-memory recent store.
func NewRecentStore() *RecentStore {
	return &RecentStore{byUser: make(map[int64][]int64)}
}

// Touch records a visit, moving the page to the front of the user's list
// and trimming it to the bound.
func (s *RecentStore) Touch(_ context.Context, userID, pageID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	next := make([]int64, 0, len(list)+1)
	next = append(next, pageID)
	for _, id := range list {
		if id != pageID {
			next = append(next, id)
		}
	}
	if len(next) > recentLimit {
		next = next[:recentLimit]
	}
	s.byUser[userID] = next
	return nil
}

// List returns the user's recently visited page IDs, newest first.
func (s *RecentStore) List(_ context.Context, userID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	out := make([]int64, len(list))
	copy(out, list)
	return out, nil
}

// Forget drops a page from every user's list.
func (s *RecentStore) Forget(_ context.Context, pageID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, list := range s.byUser {
		kept := list[:0]
		for _, id := range list {
			if id != pageID {
				kept = append(kept, id)
			}
		}
		s.byUser[userID] = kept
	}
	return nil
}
