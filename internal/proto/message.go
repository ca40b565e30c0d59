package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	InboundTypeCreateRoom = "C2SCreateRoom"
	InboundTypeJoinRoom   = "C2SJoinRoom"
	InboundTypeStartGame  = "C2SStartGame"

	OutboundTypeCreateRoom = "S2CCreateRoom"
	OutboundTypeJoinRoom   = "S2CJoinRoom"
	OutboundTypeStartGame  = "S2CStartGame"
)

// RoomRef is the routing part of any room-addressed payload.
// RoomID is kept raw so that only unquoted numbers address a room.
type RoomRef struct {
	RoomID json.RawMessage `json:"roomId"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// RoomState is sent on room creation and on every join.
type RoomState struct {
	RoomID   int64    `json:"roomId"`
	MasterID string   `json:"masterId"`
	Member   []Member `json:"member"`
}

// Member is the public view of a session inside a room.
type Member struct {
	ID string `json:"id"`
}
