package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/utils"
)

var errSlowConsumer = errors.New("connection too slow to keep up with messages")

// WSHandler upgrades HTTP connections and bridges them to core.Client.
type WSHandler struct {
	hub        *core.Hub
	log        *zerolog.Logger
	readLimit  int64
	sendBuffer int
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, readLimit int64, sendBuffer int, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{hub: hub, log: logger, readLimit: readLimit, sendBuffer: sendBuffer}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")
	if h.readLimit > 0 {
		conn.SetReadLimit(h.readLimit)
	}

	client := core.NewClient(core.SessionID(utils.NewID()), r.RemoteAddr, h.sendBuffer)
	h.hub.RegisterClient(client)
	// Single exit path: close and error both end up here exactly once.
	defer h.hub.UnregisterClient(client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if errors.Is(err, errSlowConsumer) {
			status = websocket.StatusPolicyViolation
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("session_id", string(client.ID)).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			h.log.Debug().Err(err).Str("session_id", string(client.ID)).Msg("read ws inbound")
			return err
		}

		cmd, err := inboundToCommand(data)
		if err != nil {
			h.log.Warn().Err(err).Str("session_id", string(client.ID)).Msg("dropping inbound frame")
			continue
		}

		if err := h.hub.Dispatch(client, cmd); err != nil {
			h.log.Debug().
				Err(err).
				Str("session_id", string(client.ID)).
				Str("type", cmd.Type).
				Msg("inbound dropped")
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event := <-client.Events:
			frame, err := outboundFromEvent(event)
			if err != nil {
				h.log.Error().Err(err).Str("session_id", string(client.ID)).Msg("encode ws event")
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
				h.log.Error().Err(err).Str("session_id", string(client.ID)).Msg("write ws event")
				return err
			}
		case <-client.Slow():
			return errSlowConsumer
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
