package core

import "github.com/rs/zerolog"

// Stats is a snapshot of hub sizes.
type Stats struct {
	Rooms    int `json:"rooms"`
	Sessions int `json:"sessions"`
}

// Hub ties the session registry, the room store and the router together.
// It is the only core type the transport layer talks to.
type Hub struct {
	registry *Registry
	rooms    *RoomStore
	router   *Router
	log      *zerolog.Logger
}

// NewHub creates a hub with empty state.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	registry := NewRegistry()
	rooms := NewRoomStore()
	return &Hub{
		registry: registry,
		rooms:    rooms,
		router:   NewRouter(registry, rooms, logger),
		log:      logger,
	}
}

// RegisterClient makes the client reachable for deliveries.
func (h *Hub) RegisterClient(c *Client) {
	h.registry.Register(c)
	h.log.Info().
		Str("session_id", string(c.ID)).
		Str("remote", c.RemoteAddr).
		Int("sessions", h.registry.Len()).
		Msg("session registered")
}

// UnregisterClient removes the client from future deliveries. Safe to call twice.
// Room memberships are left untouched.
func (h *Hub) UnregisterClient(c *Client) {
	if !h.registry.Remove(c.ID) {
		return
	}
	h.log.Info().
		Str("session_id", string(c.ID)).
		Int("sessions", h.registry.Len()).
		Msg("session removed")
}

// Dispatch runs one client command to completion, including all deliveries.
func (h *Hub) Dispatch(c *Client, cmd *Command) error {
	return h.router.Dispatch(c.ID, cmd)
}

// Stats returns current room and session counts.
func (h *Hub) Stats() Stats {
	return Stats{Rooms: h.rooms.Len(), Sessions: h.registry.Len()}
}

// Rooms lists room summaries ordered by id.
func (h *Hub) Rooms() []RoomInfo {
	return h.rooms.List()
}

// Room returns a snapshot of one room.
func (h *Hub) Room(id RoomID) (RoomState, bool) {
	room, ok := h.rooms.FindRoom(id)
	if !ok {
		return RoomState{}, false
	}
	return room.State(), true
}

// Online reports whether a session is currently connected.
func (h *Hub) Online(id SessionID) bool {
	_, ok := h.registry.Lookup(id)
	return ok
}
