package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

// ErrMalformedFrame marks an inbound frame that is not a valid envelope.
var ErrMalformedFrame = errors.New("malformed frame")

func inboundToCommand(data []byte) (*core.Command, error) {
	var inbound proto.Inbound
	if err := json.Unmarshal(data, &inbound); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch inbound.Type {
	case proto.InboundTypeCreateRoom:
		return &core.Command{Kind: core.CommandCreateRoom, Room: core.NoRoom, Type: inbound.Type}, nil
	case proto.InboundTypeJoinRoom:
		return &core.Command{Kind: core.CommandJoinRoom, Room: roomFromPayload(inbound.Payload), Type: inbound.Type}, nil
	case proto.InboundTypeStartGame:
		return &core.Command{Kind: core.CommandStartGame, Room: roomFromPayload(inbound.Payload), Type: inbound.Type}, nil
	default:
		return &core.Command{
			Kind: core.CommandRelay,
			Room: roomFromPayload(inbound.Payload),
			Type: inbound.Type,
			Raw:  data,
		}, nil
	}
}

// roomFromPayload extracts payload.roomId. Anything but an integral JSON
// number resolves to core.NoRoom.
func roomFromPayload(payload json.RawMessage) core.RoomID {
	var ref proto.RoomRef
	if len(payload) == 0 || json.Unmarshal(payload, &ref) != nil {
		return core.NoRoom
	}
	raw := bytes.TrimSpace(ref.RoomID)
	if len(raw) == 0 || raw[0] == '"' {
		return core.NoRoom
	}
	if id, err := strconv.ParseInt(string(raw), 10, 64); err == nil && id >= 0 {
		return core.RoomID(id)
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f >= math.MaxInt64 {
		return core.NoRoom
	}
	return core.RoomID(f)
}

func outboundFromEvent(event *core.Event) ([]byte, error) {
	switch event.Kind {
	case core.EventRelay:
		return event.Raw, nil
	case core.EventRoomCreated:
		return json.Marshal(proto.Outbound{Type: proto.OutboundTypeCreateRoom, Payload: roomState(event.State)})
	case core.EventRoomJoined:
		return json.Marshal(proto.Outbound{Type: proto.OutboundTypeJoinRoom, Payload: roomState(event.State)})
	case core.EventGameStarted:
		return json.Marshal(proto.Outbound{Type: proto.OutboundTypeStartGame})
	default:
		return nil, fmt.Errorf("unknown event kind %d", event.Kind)
	}
}

func roomState(state *core.RoomState) proto.RoomState {
	if state == nil {
		return proto.RoomState{Member: []proto.Member{}}
	}
	members := make([]proto.Member, 0, len(state.Members))
	for _, sid := range state.Members {
		members = append(members, proto.Member{ID: string(sid)})
	}
	return proto.RoomState{
		RoomID:   int64(state.ID),
		MasterID: string(state.Master),
		Member:   members,
	}
}
