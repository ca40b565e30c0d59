package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/core"
)

// RoomHandlers serves read-only views of the hub state.
type RoomHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub *core.Hub, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		hub: hub,
		log: logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RoomsResponse lists every room.
type RoomsResponse struct {
	Rooms []core.RoomInfo `json:"rooms"`
}

// MemberResponse is one room member with its connection state.
type MemberResponse struct {
	ID     string `json:"id"`
	Online bool   `json:"online"`
}

// RoomResponse is the detailed view of one room.
type RoomResponse struct {
	ID      int64            `json:"id"`
	Master  string           `json:"master"`
	Members []MemberResponse `json:"members"`
}

// Stats reports room and session counts.
// GET /stats
func (h *RoomHandlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.hub.Stats())
}

// ListRooms returns every room ordered by id.
// GET /api/rooms
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, RoomsResponse{Rooms: h.hub.Rooms()})
}

// GetRoom returns one room with its members.
// GET /api/rooms/:id
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		h.log.Debug().Str("id", c.Param("id")).Msg("invalid room id")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return
	}

	state, ok := h.hub.Room(core.RoomID(id))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	members := make([]MemberResponse, 0, len(state.Members))
	for _, sid := range state.Members {
		members = append(members, MemberResponse{ID: string(sid), Online: h.hub.Online(sid)})
	}
	c.JSON(http.StatusOK, RoomResponse{
		ID:      int64(state.ID),
		Master:  string(state.Master),
		Members: members,
	})
}
