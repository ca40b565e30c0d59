package core

import (
	"sync"
	"time"
)

// SessionID identifies one live connection.
type SessionID string

// Session is the registry's metadata about a connection.
type Session struct {
	ID          SessionID
	RemoteAddr  string
	ConnectedAt time.Time
}

// Client is a connected session as seen by the core layer.
// Events is the outbound channel; the core never closes it.
type Client struct {
	Session
	Events chan *Event

	slow     chan struct{}
	slowOnce sync.Once
}

// NewClient constructs a client with a buffered outbound channel.
func NewClient(id SessionID, remoteAddr string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 8
	}
	return &Client{
		Session: Session{
			ID:          id,
			RemoteAddr:  remoteAddr,
			ConnectedAt: time.Now(),
		},
		Events: make(chan *Event, buffer),
		slow:   make(chan struct{}),
	}
}

// Send queues ev without blocking. When the buffer is full the client is
// marked slow and false is returned; the connection owner is expected to
// close the connection once Slow fires.
func (c *Client) Send(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		c.slowOnce.Do(func() { close(c.slow) })
		return false
	}
}

// Slow is closed after the first Send that found the buffer full.
func (c *Client) Slow() <-chan struct{} {
	return c.slow
}
