package core

import (
	"cmp"
	"slices"
	"sync"
)

// RoomStore owns room creation and lookup.
// Rooms are never deleted while serving.
type RoomStore struct {
	mu     sync.RWMutex
	nextID RoomID
	rooms  map[RoomID]*Room
}

// NewRoomStore returns an empty store whose first room gets id 0.
func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[RoomID]*Room)}
}

// CreateRoom allocates the next id and stores a room with master as sole member.
func (s *RoomStore) CreateRoom(master SessionID) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := NewRoom(s.nextID, master)
	s.rooms[room.ID] = room
	s.nextID++
	return room
}

// FindRoom looks up a room by id.
func (s *RoomStore) FindRoom(id RoomID) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	return room, ok
}

// Len returns the number of rooms ever created since the last reset.
func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// List returns room summaries ordered by id.
func (s *RoomStore) List() []RoomInfo {
	s.mu.RLock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.mu.RUnlock()

	out := make([]RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Info())
	}
	slices.SortFunc(out, func(a, b RoomInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Reset drops every room and restarts id allocation at 0.
func (s *RoomStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = make(map[RoomID]*Room)
	s.nextID = 0
}
