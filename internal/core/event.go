package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomCreated answers the creator of a room.
	EventRoomCreated EventKind = iota
	// EventRoomJoined tells every member about the new member list.
	EventRoomJoined
	// EventGameStarted tells every member the game started.
	EventGameStarted
	// EventRelay carries a client frame verbatim.
	EventRelay
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind EventKind
	// State is set for EventRoomCreated and EventRoomJoined.
	State *RoomState
	// Raw is set for EventRelay and must not be modified.
	Raw []byte
}
