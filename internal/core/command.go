package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateRoom opens a new room with the sender as master.
	CommandCreateRoom CommandKind = iota
	// CommandJoinRoom appends the sender to an existing room.
	CommandJoinRoom
	// CommandStartGame notifies every room member that the game started.
	CommandStartGame
	// CommandRelay forwards the inbound frame to every room member.
	CommandRelay
)

func (k CommandKind) String() string {
	switch k {
	case CommandCreateRoom:
		return "create_room"
	case CommandJoinRoom:
		return "join_room"
	case CommandStartGame:
		return "start_game"
	case CommandRelay:
		return "relay"
	default:
		return "unknown"
	}
}

// Command represents an action requested by a client.
type Command struct {
	Kind CommandKind
	// Room is NoRoom when the frame carried no usable room id.
	Room RoomID
	// Type is the inbound type tag, kept for logging relayed frames.
	Type string
	// Raw is the inbound frame as received; only CommandRelay uses it.
	Raw []byte
}
