package storage

import "sync"

// SessionCache remembers which game session a user is currently playing so
// the bot can route answer callbacks without a database lookup per tap. The
// database stays authoritative; a cache miss just falls back to a query.
type SessionCache struct {
	mu       sync.RWMutex
	sessions map[int64]int64 // user id -> active session id
}

// NewSessionCache creates a new SessionCache.
func NewSessionCache() *SessionCache {
	return &SessionCache{
		sessions: make(map[int64]int64),
	}
}

// Store remembers the active session for a user.
func (c *SessionCache) Store(userID, sessionID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[userID] = sessionID
}

// Get returns the cached session id for a user, if any.
func (c *SessionCache) Get(userID int64) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.sessions[userID]
	return id, ok
}

// Delete forgets the session for a user.
func (c *SessionCache) Delete(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, userID)
}
