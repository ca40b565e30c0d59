package core

import "sync"

// RoomID is allocated sequentially by the RoomStore.
type RoomID int64

// NoRoom marks a command that did not name a valid room.
const NoRoom RoomID = -1

// RoomState is a point-in-time view of a room.
type RoomState struct {
	ID      RoomID
	Master  SessionID
	Members []SessionID
}

// RoomInfo is a summary used by the HTTP read-only views.
type RoomInfo struct {
	ID          RoomID    `json:"id"`
	Master      SessionID `json:"master"`
	MemberCount int       `json:"member_count"`
}

// Room groups sessions behind one master.
// Members are append-only: a session that joins twice is listed twice,
// and a disconnected session stays listed.
type Room struct {
	ID     RoomID
	Master SessionID

	mu      sync.Mutex
	members []SessionID
}

// NewRoom constructs a room whose first member is its master.
func NewRoom(id RoomID, master SessionID) *Room {
	return &Room{
		ID:      id,
		Master:  master,
		members: []SessionID{master},
	}
}

// AddMember appends sid and returns the room state right after the append.
func (r *Room) AddMember(sid SessionID) RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = append(r.members, sid)
	return r.stateLocked()
}

// Members returns a copy of the member list in join order.
func (r *Room) Members() []SessionID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SessionID(nil), r.members...)
}

// State returns a snapshot of the room.
func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

// Info returns a summary of the room.
func (r *Room) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomInfo{ID: r.ID, Master: r.Master, MemberCount: len(r.members)}
}

func (r *Room) stateLocked() RoomState {
	return RoomState{
		ID:      r.ID,
		Master:  r.Master,
		Members: append([]SessionID(nil), r.members...),
	}
}
