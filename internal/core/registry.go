package core

import "sync"

// Registry maps live session ids to their metadata and connected client.
// Both maps are written together.
type Registry struct {
	mu       sync.RWMutex
	sessions map[SessionID]Session
	clients  map[SessionID]*Client
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[SessionID]Session),
		clients:  make(map[SessionID]*Client),
	}
}

// Register inserts the client, overwriting any previous entry for the same id.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[c.ID] = c.Session
	r.clients[c.ID] = c
}

// Lookup returns the client of a live session.
func (r *Registry) Lookup(id SessionID) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	return c, ok
}

// Session returns the metadata of a live session.
func (r *Registry) Session(id SessionID) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove deletes the session. Returns true if it was present.
func (r *Registry) Remove(id SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	delete(r.clients, id)
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
