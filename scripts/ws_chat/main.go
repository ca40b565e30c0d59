package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

// Interactive client. Commands:
//
//	/create      create a room and use it
//	/join N      join room N and use it
//	/start       start the game in the current room
//	anything     relayed as {"type":"chat","payload":{"roomId":N,"text":...}}
func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

type roomPayload struct {
	RoomID int64  `json:"roomId"`
	Text   string `json:"text,omitempty"`
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8787/", "WebSocket address")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	var room atomic.Int64
	room.Store(-1)

	fmt.Printf("Connected to %s\n", *addr)
	fmt.Println("Commands: /create, /join N, /start. Other lines are relayed. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn, &room)
	}()

	writeLoop(ctx, conn, &room)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn, room *atomic.Int64) {
	for {
		_, frame, err := conn.Read(ctx)
		if err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		var outbound struct {
			Type    string          `json:"type"`
			Payload proto.RoomState `json:"payload"`
		}
		if err := json.Unmarshal(frame, &outbound); err != nil {
			fmt.Printf("raw: %s\n", frame)
			continue
		}

		switch outbound.Type {
		case proto.OutboundTypeCreateRoom:
			room.Store(outbound.Payload.RoomID)
			fmt.Printf("[room %d] created, you are %s\n", outbound.Payload.RoomID, outbound.Payload.MasterID)
		case proto.OutboundTypeJoinRoom:
			fmt.Printf("[room %d] members: %d\n", outbound.Payload.RoomID, len(outbound.Payload.Member))
		case proto.OutboundTypeStartGame:
			fmt.Println("game started")
		default:
			fmt.Printf("%s\n", frame)
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, room *atomic.Int64) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			msg, err := lineToInbound(text, room)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}

func lineToInbound(text string, room *atomic.Int64) (proto.Inbound, error) {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/create":
		return proto.Inbound{Type: proto.InboundTypeCreateRoom}, nil
	case "/join":
		if len(fields) != 2 {
			return proto.Inbound{}, errors.New("usage: /join N")
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return proto.Inbound{}, fmt.Errorf("bad room id: %w", err)
		}
		room.Store(id)
		return roomInbound(proto.InboundTypeJoinRoom, roomPayload{RoomID: id})
	case "/start":
		return roomInbound(proto.InboundTypeStartGame, roomPayload{RoomID: room.Load()})
	default:
		return roomInbound("chat", roomPayload{RoomID: room.Load(), Text: text})
	}
}

func roomInbound(typ string, payload roomPayload) (proto.Inbound, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return proto.Inbound{}, fmt.Errorf("marshal payload: %w", err)
	}
	return proto.Inbound{Type: typ, Payload: raw}, nil
}
