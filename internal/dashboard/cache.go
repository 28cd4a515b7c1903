package dashboard

import "github.com/smileynet/pitwall/internal/f1"

// sessionCache stores loaded SessionData keyed by the identifier's cache key,
// so switching tabs or re-selecting a session never refetches within one run.
// It is not safe for concurrent use; access is confined to the Bubble Tea
// update loop.
type sessionCache struct {
	entries map[string]*f1.SessionData
}

// newSessionCache creates an empty cache.
func newSessionCache() *sessionCache {
	return &sessionCache{entries: make(map[string]*f1.SessionData)}
}

// Get returns the cached data for the given identifier, or nil and false on miss.
func (c *sessionCache) Get(id f1.SessionID) (*f1.SessionData, bool) {
	d, ok := c.entries[id.Key()]
	return d, ok
}

// Set stores session data, replacing any existing entry.
func (c *sessionCache) Set(id f1.SessionID, data *f1.SessionData) {
	c.entries[id.Key()] = data
}

// Delete removes the entry for one identifier, leaving others intact.
// Deleting a missing entry is a no-op.
func (c *sessionCache) Delete(id f1.SessionID) {
	delete(c.entries, id.Key())
}
