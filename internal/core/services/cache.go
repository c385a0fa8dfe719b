package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/Sovatiano/wiki-app/internal/logger"
)

// Cache tags identify the resources a cached query result depends on.
// A mutation declares the tags it invalidates; every cached entry sharing
// one is marked stale. This is the sole cache-coherence mechanism; there
// is no manual cache-busting elsewhere.
const (
	// TagPages covers any listing of pages (tree, my-pages, popular).
	TagPages = "Pages"

	// TagSearch covers search result sets.
	TagSearch = "Search"

	// TagUsers covers user listings (admin panel, collaborator picker).
	TagUsers = "Users"
)

// TagPage returns the tag for a single page's content.
func TagPage(id int64) string {
	return "Page:" + strconv.FormatInt(id, 10)
}

// TagHistory returns the tag for a page's version history.
func TagHistory(id int64) string {
	return "History:" + strconv.FormatInt(id, 10)
}

// TagCollaborators returns the tag for a page's collaborator list.
func TagCollaborators(id int64) string {
	return "Collaborators:" + strconv.FormatInt(id, 10)
}

// TagLikes returns the tag for a page's like status.
func TagLikes(id int64) string {
	return "Likes:" + strconv.FormatInt(id, 10)
}

// QueryKey identifies one cached query result: the endpoint kind plus its
// parameter, e.g. {"pages.get", "5"}.
type QueryKey struct {
	Op    string
	Param string
}

// FetchFunc produces a fresh value for a cache entry.
type FetchFunc func(ctx context.Context) (any, error)

// TagFunc derives the tag set for a fetched value. Tags may depend on the
// response: fetching a page by slug tags it with the numeric ID the server
// returned.
type TagFunc func(value any) []string

// StaticTags returns a TagFunc for queries whose tags don't depend on the
// response.
func StaticTags(tags ...string) TagFunc {
	return func(any) []string { return tags }
}

// RefreshFunc receives the new value (or refetch error) for a subscribed
// entry after an invalidation refetched it.
type RefreshFunc func(value any, err error)

type cacheEntry struct {
	key         QueryKey
	tags        map[string]struct{}
	value       any
	stale       bool
	fetch       FetchFunc
	retag       TagFunc
	subscribers map[string]RefreshFunc
}

func (e *cacheEntry) hasAnyTag(tags []string) bool {
	for _, t := range tags {
		if _, ok := e.tags[t]; ok {
			return true
		}
	}
	return false
}

// QueryCache is a normalized request cache with tag-based invalidation.
//
// Lifecycle of an entry: created on first successful fetch; marked stale
// when a mutation invalidates one of its tags; refetched immediately when
// it has active subscribers, otherwise on next access; evicted by Prune
// once nothing subscribes to it.
//
// A failed fetch caches nothing; errors always propagate to the caller.
// Concurrent mutations against the same tag are not serialized: whichever
// refetch completes last determines the cached state.
type QueryCache struct {
	mu      sync.Mutex
	entries map[QueryKey]*cacheEntry
}

// NewQueryCache creates an empty query cache.
func NewQueryCache() *QueryCache {
	return &QueryCache{
		entries: make(map[QueryKey]*cacheEntry),
	}
}

// Get returns the cached value for key, fetching when the entry is
// missing or stale. The fetch function and tag derivation are recorded so
// invalidation can refetch subscribed entries on its own.
func (c *QueryCache) Get(ctx context.Context, key QueryKey, retag TagFunc, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.stale {
		value := e.value
		c.mu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{
			key:         key,
			subscribers: make(map[string]RefreshFunc),
		}
		c.entries[key] = e
	}
	e.value = value
	e.stale = false
	e.fetch = fetch
	e.retag = retag
	e.tags = tagSet(retag(value))
	return value, nil
}

// Subscribe registers interest in a key. Subscribed entries are refetched
// immediately when invalidated, with the result delivered to onRefresh.
// The returned function cancels the subscription.
func (c *QueryCache) Subscribe(key QueryKey, onRefresh RefreshFunc) (cancel func()) {
	id := uuid.NewString()

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{
			key:         key,
			stale:       true, // nothing fetched yet
			subscribers: make(map[string]RefreshFunc),
		}
		c.entries[key] = e
	}
	e.subscribers[id] = onRefresh
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if e, ok := c.entries[key]; ok {
			delete(e.subscribers, id)
		}
	}
}

// Invalidate marks every entry sharing one of the tags stale. Entries
// with active subscribers are refetched at once and their subscribers
// notified; the rest wait for the next Get.
func (c *QueryCache) Invalidate(ctx context.Context, tags ...string) {
	c.mu.Lock()
	var affected []*cacheEntry
	for _, e := range c.entries {
		if e.hasAnyTag(tags) {
			e.stale = true
			if len(e.subscribers) > 0 && e.fetch != nil {
				affected = append(affected, e)
			}
		}
	}
	c.mu.Unlock()

	for _, e := range affected {
		c.refresh(ctx, e)
	}
}

// refresh refetches a stale subscribed entry and notifies subscribers.
func (c *QueryCache) refresh(ctx context.Context, e *cacheEntry) {
	value, err := e.fetch(ctx)

	c.mu.Lock()
	var callbacks []RefreshFunc
	if err == nil {
		e.value = value
		e.stale = false
		e.tags = tagSet(e.retag(value))
	} else {
		logger.Warn("cache refresh %s(%s): %v", e.key.Op, e.key.Param, err)
	}
	for _, fn := range e.subscribers {
		callbacks = append(callbacks, fn)
	}
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(value, err)
	}
}

// Prune evicts entries that no subscriber references. Long-running UIs
// call it when tearing down a view scope.
func (c *QueryCache) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if len(e.subscribers) == 0 {
			delete(c.entries, key)
		}
	}
}

// Reset drops every entry, e.g. after logout switches identities.
func (c *QueryCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[QueryKey]*cacheEntry)
}

// IsStale reports whether a cached entry exists and is marked stale.
func (c *QueryCache) IsStale(key QueryKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && e.stale
}

// Cached reports whether a fresh value exists for key.
func (c *QueryCache) Cached(key QueryKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && !e.stale && e.fetch != nil
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}
