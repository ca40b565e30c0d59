package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

// Runs the create/join/start/relay round trip with two clients.
func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8787/", "WebSocket address")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	master, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial master: %w", err)
	}
	defer master.Close(websocket.StatusNormalClosure, "bye")

	guest, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial guest: %w", err)
	}
	defer guest.Close(websocket.StatusNormalClosure, "bye")

	if err := wsjson.Write(ctx, master, proto.Inbound{Type: proto.InboundTypeCreateRoom}); err != nil {
		return fmt.Errorf("send create: %w", err)
	}
	var created struct {
		Type    string          `json:"type"`
		Payload proto.RoomState `json:"payload"`
	}
	if err := wsjson.Read(ctx, master, &created); err != nil {
		return fmt.Errorf("read create: %w", err)
	}
	if created.Type != proto.OutboundTypeCreateRoom {
		return fmt.Errorf("unexpected reply %q to create", created.Type)
	}
	roomID := created.Payload.RoomID
	fmt.Printf("room %d created by %s\n", roomID, created.Payload.MasterID)

	steps := []struct {
		from *websocket.Conn
		who  string
		body string
	}{
		{guest, "guest", fmt.Sprintf(`{"type":%q,"payload":{"roomId":%d}}`, proto.InboundTypeJoinRoom, roomID)},
		{guest, "guest", fmt.Sprintf(`{"type":%q,"payload":{"roomId":%d}}`, proto.InboundTypeStartGame, roomID)},
		{master, "master", fmt.Sprintf(`{"type":"move","payload":{"roomId":%d,"x":1,"y":2}}`, roomID)},
	}

	for _, step := range steps {
		if err := step.from.Write(ctx, websocket.MessageText, []byte(step.body)); err != nil {
			return fmt.Errorf("%s send: %w", step.who, err)
		}
		for _, peer := range []struct {
			name string
			conn *websocket.Conn
		}{{"master", master}, {"guest", guest}} {
			_, frame, err := peer.conn.Read(ctx)
			if err != nil {
				return fmt.Errorf("%s read: %w", peer.name, err)
			}
			fmt.Printf("%s <- %s\n", peer.name, frame)
		}
	}
	return nil
}
