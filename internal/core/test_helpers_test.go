package core

import (
	"testing"
	"time"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	return NewHub(nil)
}

func connect(t *testing.T, h *Hub, id string) *Client {
	t.Helper()
	c := NewClient(SessionID(id), "test", 16)
	h.RegisterClient(c)
	return c
}

func dispatch(t *testing.T, h *Hub, c *Client, cmd *Command) {
	t.Helper()
	if err := h.Dispatch(c, cmd); err != nil {
		t.Fatalf("dispatch %s from %s: %v", cmd.Kind, c.ID, err)
	}
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	select {
	case ev := <-ch:
		if ev == nil || ev.Kind != kind {
			t.Fatalf("expected event kind %v, got %+v", kind, ev)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatalf("expected event kind %v not received", kind)
		return nil
	}
}

func noEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	default:
	}
}

func ids(names ...string) []SessionID {
	out := make([]SessionID, 0, len(names))
	for _, n := range names {
		out = append(out, SessionID(n))
	}
	return out
}
