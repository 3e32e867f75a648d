package handlers

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/aaronzipp/banker-and-robber/internal/config"
	"github.com/aaronzipp/banker-and-robber/internal/game"
	"github.com/aaronzipp/banker-and-robber/internal/hub"
	"github.com/aaronzipp/banker-and-robber/internal/models"
	"github.com/aaronzipp/banker-and-robber/internal/store"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	return newContextWithLogger(zaptest.NewLogger(t))
}

// newQuietContext is for tests whose eviction timers or server goroutines
// may still log after the test returns
func newQuietContext(t *testing.T) *Context {
	t.Helper()
	return newContextWithLogger(zap.NewNop())
}

func newContextWithLogger(log *zap.Logger) *Context {
	cfg := config.Config{
		Port:            8080,
		RoomTTL:         time.Hour,
		SweepInterval:   time.Minute,
		LobbyEvictDelay: 10 * time.Millisecond,
	}
	registry := store.NewRoomRegistry(store.WithRoomOptions(game.WithRand(rand.New(rand.NewPCG(1, 2)))))
	ctx := NewContext(cfg, registry, hub.New(log), log)

	var seq atomic.Int64
	ctx.NewID = func() string { return fmt.Sprintf("player-%d", seq.Add(1)) }
	return ctx
}

func dispatch(t *testing.T, ctx *Context, c *hub.Client, cmd string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	ctx.Dispatch(c, Envelope{Type: cmd, Data: raw})
}

// expect reads messages until one of the given event arrives
func expect(t *testing.T, c *hub.Client, event string) hub.Message {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case msg := <-c.Send:
			if msg.Event == event {
				return msg
			}
		case <-timeout:
			t.Fatalf("no %s event", event)
		}
	}
}

func expectError(t *testing.T, c *hub.Client, want string) {
	t.Helper()
	msg := expect(t, c, hub.EventErrorMessage)
	if msg.Data != want {
		t.Fatalf("error = %v, want %q", msg.Data, want)
	}
}

// expectNo asserts no message of the event is queued
func expectNo(t *testing.T, c *hub.Client, event string) {
	t.Helper()
	for {
		select {
		case msg := <-c.Send:
			if msg.Event == event {
				t.Fatalf("unexpected %s: %+v", event, msg.Data)
			}
		default:
			return
		}
	}
}

func drain(c *hub.Client) {
	for {
		select {
		case <-c.Send:
		default:
			return
		}
	}
}

type table struct {
	ctx     *Context
	code    string
	clients map[string]*hub.Client // playerID -> client
	order   []string
}

// openTable creates a room over the dispatcher and seats n players
func openTable(t *testing.T, ctx *Context, n int) *table {
	t.Helper()
	host := hub.NewClient()
	dispatch(t, ctx, host, CmdCreateGame, CreateGameRequest{HostName: "Host"})
	created := expect(t, host, hub.EventGameCreated).Data.(JoinedPayload)

	tb := &table{
		ctx:     ctx,
		code:    created.RoomCode,
		clients: map[string]*hub.Client{created.PlayerID: host},
		order:   []string{created.PlayerID},
	}
	for i := 1; i < n; i++ {
		c := hub.NewClient()
		dispatch(t, ctx, c, CmdJoinGame, JoinGameRequest{RoomCode: tb.code, PlayerName: fmt.Sprintf("Guest%d", i)})
		joined := expect(t, c, hub.EventGameJoined).Data.(JoinedPayload)
		tb.clients[joined.PlayerID] = c
		tb.order = append(tb.order, joined.PlayerID)
	}
	tb.drainAll()
	return tb
}

func (tb *table) host() *hub.Client { return tb.clients[tb.order[0]] }

func (tb *table) room(t *testing.T) *game.Room {
	t.Helper()
	room, ok := tb.ctx.Registry.Get(tb.code)
	if !ok {
		t.Fatal("room missing")
	}
	return room
}

func (tb *table) drainAll() {
	for _, c := range tb.clients {
		drain(c)
	}
}

func (tb *table) start(t *testing.T) {
	t.Helper()
	dispatch(t, tb.ctx, tb.host(), CmdStartGame, RoomRequest{RoomCode: tb.code})
	expect(t, tb.host(), hub.EventGameStarted)
	tb.drainAll()
}

// president returns the current presidential candidate
func (tb *table) president(t *testing.T) string {
	t.Helper()
	room := tb.room(t)
	room.RLock()
	defer room.RUnlock()
	return room.PresidentID()
}

// other returns the first seated player not in exclude
func (tb *table) other(t *testing.T, exclude ...string) string {
	t.Helper()
outer:
	for _, id := range tb.order {
		for _, ex := range exclude {
			if id == ex {
				continue outer
			}
		}
		return id
	}
	t.Fatal("no player left")
	return ""
}

// playUntil drives the room directly until an executive action is pending,
// favouring robber policies. Every government passes
func (tb *table) playUntil(t *testing.T, action models.ExecutiveAction) {
	t.Helper()
	room := tb.room(t)
	room.Lock()
	defer room.Unlock()

	for range 20 {
		if room.PendingAction() == action {
			return
		}
		if room.Status() != models.StatusElection {
			t.Fatalf("unexpected status %s", room.Status())
		}

		nominated := false
		for _, id := range tb.order {
			if room.NominateChancellor(id) == nil {
				nominated = true
				break
			}
		}
		if !nominated {
			t.Fatal("no eligible chancellor")
		}
		for _, id := range tb.order {
			room.RegisterVote(id, true)
		}
		if room.Status() != models.StatusLegislative {
			t.Fatalf("government did not form: %s", room.Status())
		}

		if err := room.PresidentDiscard(bankerIndex(room.Hand())); err != nil {
			t.Fatal(err)
		}
		if err := room.ChancellorDiscard(bankerIndex(room.Hand())); err != nil {
			t.Fatal(err)
		}

		if room.Status() == models.StatusExecutive && room.PendingAction() != action {
			t.Fatalf("reached %s first", room.PendingAction())
		}
	}
	t.Fatalf("never reached %s", action)
}

func bankerIndex(hand []models.Policy) int {
	for i, p := range hand {
		if p == models.PolicyBanker {
			return i
		}
	}
	return 0
}

// seat returns a player's public entry in a room
func seat(t *testing.T, ctx *Context, code, playerID string) (models.PlayerView, bool) {
	t.Helper()
	room, ok := ctx.Registry.Get(code)
	if !ok {
		t.Fatalf("room %s missing", code)
	}
	room.RLock()
	defer room.RUnlock()
	for _, p := range room.View(playerID).Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return models.PlayerView{}, false
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
