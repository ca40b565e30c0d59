package core

import (
	"fmt"

	"github.com/rs/zerolog"
)

// PublishResult reports what happened to one broadcast.
type PublishResult struct {
	SentTo int
	// Skipped counts members with no live session.
	Skipped int
	// Dropped counts members whose outbound buffer was full.
	Dropped int
}

// Router applies client commands to the room store and delivers the resulting events.
type Router struct {
	registry *Registry
	rooms    *RoomStore
	log      *zerolog.Logger
}

// NewRouter builds a router over the given registry and store.
func NewRouter(registry *Registry, rooms *RoomStore, logger *zerolog.Logger) *Router {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Router{registry: registry, rooms: rooms, log: logger}
}

// Dispatch handles one command from sender. It returns ErrRoomNotFound when the
// command addressed a missing room; nothing is delivered in that case.
func (r *Router) Dispatch(sender SessionID, cmd *Command) error {
	switch cmd.Kind {
	case CommandCreateRoom:
		return r.createRoom(sender)
	case CommandJoinRoom:
		return r.joinRoom(sender, cmd.Room)
	case CommandStartGame:
		return r.startGame(cmd.Room)
	case CommandRelay:
		return r.relay(sender, cmd)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCommand, cmd.Kind)
	}
}

func (r *Router) createRoom(sender SessionID) error {
	room := r.rooms.CreateRoom(sender)
	state := room.State()
	r.log.Info().Str("session_id", string(sender)).Int64("room_id", int64(room.ID)).Msg("room created")

	r.deliver(sender, &Event{Kind: EventRoomCreated, State: &state})
	return nil
}

func (r *Router) joinRoom(sender SessionID, id RoomID) error {
	room, err := r.findRoom(id)
	if err != nil {
		return err
	}
	state := room.AddMember(sender)
	r.log.Info().
		Str("session_id", string(sender)).
		Int64("room_id", int64(id)).
		Int("members", len(state.Members)).
		Msg("room joined")

	r.Broadcast(state.Members, &Event{Kind: EventRoomJoined, State: &state})
	return nil
}

func (r *Router) startGame(id RoomID) error {
	room, err := r.findRoom(id)
	if err != nil {
		return err
	}
	res := r.Broadcast(room.Members(), &Event{Kind: EventGameStarted})
	r.log.Info().Int64("room_id", int64(id)).Int("sent_to", res.SentTo).Msg("game started")
	return nil
}

func (r *Router) relay(sender SessionID, cmd *Command) error {
	room, err := r.findRoom(cmd.Room)
	if err != nil {
		return err
	}
	res := r.Broadcast(room.Members(), &Event{Kind: EventRelay, Raw: cmd.Raw})
	r.log.Debug().
		Str("session_id", string(sender)).
		Int64("room_id", int64(cmd.Room)).
		Str("type", cmd.Type).
		Int("sent_to", res.SentTo).
		Int("skipped", res.Skipped).
		Int("dropped", res.Dropped).
		Msg("relayed")
	return nil
}

func (r *Router) findRoom(id RoomID) (*Room, error) {
	room, ok := r.rooms.FindRoom(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrRoomNotFound, id)
	}
	return room, nil
}

// Broadcast delivers ev to each member in order. Members without a live
// session are skipped and stay in the room. A member whose buffer is full
// is removed from the registry and marked slow so its connection gets
// closed; it never receives a later event out of order.
func (r *Router) Broadcast(members []SessionID, ev *Event) PublishResult {
	var res PublishResult
	for _, sid := range members {
		c, ok := r.registry.Lookup(sid)
		if !ok {
			res.Skipped++
			continue
		}
		if !r.send(c, ev) {
			res.Dropped++
			continue
		}
		res.SentTo++
	}
	return res
}

func (r *Router) deliver(sid SessionID, ev *Event) bool {
	c, ok := r.registry.Lookup(sid)
	if !ok {
		return false
	}
	return r.send(c, ev)
}

func (r *Router) send(c *Client, ev *Event) bool {
	if c.Send(ev) {
		return true
	}
	if r.registry.Remove(c.ID) {
		r.log.Warn().
			Str("session_id", string(c.ID)).
			Int("buffer", cap(c.Events)).
			Msg("outbound buffer full, dropping slow session")
	}
	return false
}
