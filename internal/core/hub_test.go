package core

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestHubCreateRoomAnswersCreatorOnly(t *testing.T) {
	hub := newTestHub(t)
	alice := connect(t, hub, "a")
	bob := connect(t, hub, "b")

	dispatch(t, hub, alice, &Command{Kind: CommandCreateRoom, Room: NoRoom})

	ev := mustEvent(t, alice.Events, EventRoomCreated)
	if ev.State.ID != 0 || ev.State.Master != "a" || !slices.Equal(ev.State.Members, ids("a")) {
		t.Fatalf("unexpected room state: %+v", ev.State)
	}
	noEvent(t, bob.Events)
}

func TestHubScenario(t *testing.T) {
	hub := newTestHub(t)
	alice := connect(t, hub, "a")
	bob := connect(t, hub, "b")

	dispatch(t, hub, alice, &Command{Kind: CommandCreateRoom})
	mustEvent(t, alice.Events, EventRoomCreated)

	dispatch(t, hub, bob, &Command{Kind: CommandJoinRoom, Room: 0})
	for _, c := range []*Client{alice, bob} {
		ev := mustEvent(t, c.Events, EventRoomJoined)
		if ev.State.Master != "a" || !slices.Equal(ev.State.Members, ids("a", "b")) {
			t.Fatalf("%s got unexpected join state: %+v", c.ID, ev.State)
		}
	}

	dispatch(t, hub, bob, &Command{Kind: CommandStartGame, Room: 0})
	mustEvent(t, alice.Events, EventGameStarted)
	mustEvent(t, bob.Events, EventGameStarted)

	raw := []byte(`{"type":"move","payload":{"roomId":0,"x":1,"y":2}}`)
	dispatch(t, hub, alice, &Command{Kind: CommandRelay, Room: 0, Type: "move", Raw: raw})
	for _, c := range []*Client{alice, bob} {
		ev := mustEvent(t, c.Events, EventRelay)
		if string(ev.Raw) != string(raw) {
			t.Fatalf("%s got %s, want verbatim %s", c.ID, ev.Raw, raw)
		}
	}
}

func TestHubMissingRoomIsDroppedSilently(t *testing.T) {
	hub := newTestHub(t)
	alice := connect(t, hub, "a")
	bob := connect(t, hub, "b")

	dispatch(t, hub, alice, &Command{Kind: CommandCreateRoom})
	mustEvent(t, alice.Events, EventRoomCreated)

	for _, cmd := range []*Command{
		{Kind: CommandJoinRoom, Room: 7},
		{Kind: CommandStartGame, Room: 7},
		{Kind: CommandRelay, Room: 7, Raw: []byte(`{}`)},
		{Kind: CommandJoinRoom, Room: NoRoom},
	} {
		err := hub.Dispatch(bob, cmd)
		if !errors.Is(err, ErrRoomNotFound) {
			t.Fatalf("%s: expected ErrRoomNotFound, got %v", cmd.Kind, err)
		}
	}

	noEvent(t, alice.Events)
	noEvent(t, bob.Events)
	state, _ := hub.Room(0)
	if !slices.Equal(state.Members, ids("a")) {
		t.Fatalf("room mutated by failed join: %+v", state)
	}
}

func TestHubDoubleJoinIsNotDeduplicated(t *testing.T) {
	hub := newTestHub(t)
	alice := connect(t, hub, "a")
	bob := connect(t, hub, "b")

	dispatch(t, hub, alice, &Command{Kind: CommandCreateRoom})
	mustEvent(t, alice.Events, EventRoomCreated)

	dispatch(t, hub, bob, &Command{Kind: CommandJoinRoom, Room: 0})
	mustEvent(t, alice.Events, EventRoomJoined)
	mustEvent(t, bob.Events, EventRoomJoined)

	dispatch(t, hub, bob, &Command{Kind: CommandJoinRoom, Room: 0})
	ev := mustEvent(t, alice.Events, EventRoomJoined)
	if !slices.Equal(ev.State.Members, ids("a", "b", "b")) {
		t.Fatalf("expected duplicate member, got %v", ev.State.Members)
	}
	// Bob is listed twice, so he receives the broadcast twice.
	mustEvent(t, bob.Events, EventRoomJoined)
	mustEvent(t, bob.Events, EventRoomJoined)
	noEvent(t, bob.Events)
}

func TestHubDisconnectStopsDeliveryButKeepsMembership(t *testing.T) {
	hub := newTestHub(t)
	alice := connect(t, hub, "a")
	bob := connect(t, hub, "b")

	dispatch(t, hub, alice, &Command{Kind: CommandCreateRoom})
	mustEvent(t, alice.Events, EventRoomCreated)
	dispatch(t, hub, bob, &Command{Kind: CommandJoinRoom, Room: 0})
	mustEvent(t, alice.Events, EventRoomJoined)
	mustEvent(t, bob.Events, EventRoomJoined)

	hub.UnregisterClient(bob)
	hub.UnregisterClient(bob)

	if hub.Online(bob.ID) {
		t.Fatal("bob should be offline")
	}
	dispatch(t, hub, alice, &Command{Kind: CommandStartGame, Room: 0})
	mustEvent(t, alice.Events, EventGameStarted)
	noEvent(t, bob.Events)

	state, _ := hub.Room(0)
	if !slices.Equal(state.Members, ids("a", "b")) {
		t.Fatalf("membership should survive disconnect: %v", state.Members)
	}
	if got := hub.Stats(); got.Sessions != 1 || got.Rooms != 1 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestHubStartGameDoesNotMutate(t *testing.T) {
	hub := newTestHub(t)
	alice := connect(t, hub, "a")

	dispatch(t, hub, alice, &Command{Kind: CommandCreateRoom})
	mustEvent(t, alice.Events, EventRoomCreated)

	before, _ := hub.Room(0)
	dispatch(t, hub, alice, &Command{Kind: CommandStartGame, Room: 0})
	mustEvent(t, alice.Events, EventGameStarted)
	after, _ := hub.Room(0)

	if !slices.Equal(before.Members, after.Members) || before.Master != after.Master {
		t.Fatalf("start game changed the room: %+v -> %+v", before, after)
	}
}

func TestHubConcurrentJoinsAreAllRecorded(t *testing.T) {
	hub := newTestHub(t)
	master := connect(t, hub, "m")
	dispatch(t, hub, master, &Command{Kind: CommandCreateRoom})

	const joiners = 50
	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		c := NewClient(SessionID("j"+string(rune('A'+i))), "test", 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := hub.Dispatch(c, &Command{Kind: CommandJoinRoom, Room: 0}); err != nil {
				t.Errorf("join: %v", err)
			}
		}()
	}
	wg.Wait()

	state, _ := hub.Room(0)
	if len(state.Members) != joiners+1 {
		t.Fatalf("expected %d members, got %d", joiners+1, len(state.Members))
	}
}

func TestHubUnknownCommandKind(t *testing.T) {
	hub := newTestHub(t)
	alice := connect(t, hub, "a")

	if err := hub.Dispatch(alice, &Command{Kind: CommandKind(42)}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}
