package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aaronzipp/banker-and-robber/internal/models"
)

func TestNewRoomSeatsHost(t *testing.T) {
	r := newLobby(t, 1)
	assertStatus(t, r, models.StatusLobby)
	if !r.IsHost(pid(0)) || r.PlayerCount() != 1 {
		t.Fatalf("host = %s players = %d", r.HostID, r.PlayerCount())
	}
	logs := r.Logs()
	if len(logs) != 2 || !strings.HasSuffix(logs[0], "Game created by Player0") {
		t.Fatalf("logs = %v", logs)
	}
	if !strings.HasPrefix(logs[0], "[12:00:00] ") {
		t.Fatalf("log timestamp = %q", logs[0])
	}
}

func TestAddPlayerRules(t *testing.T) {
	r := newLobby(t, 3)

	requireErr(t, r.AddPlayer(pid(1), "Someone"), ErrAlreadyJoined)
	requireErr(t, r.AddPlayer("new", "player1"), ErrNameTaken)

	for i := 3; i < MaxPlayers; i++ {
		if err := r.AddPlayer(pid(i), pname(i)); err != nil {
			t.Fatal(err)
		}
	}
	requireErr(t, r.AddPlayer("eleventh", "Eleven"), ErrRoomFull)
	if r.PlayerCount() != MaxPlayers {
		t.Fatalf("players = %d", r.PlayerCount())
	}
}

func TestAddPlayerAfterStart(t *testing.T) {
	r := newGame(t, 5)
	requireErr(t, r.AddPlayer("late", "Late"), ErrGameAlreadyStarted)
	if !errors.Is(ErrGameAlreadyStarted, ErrRuleViolation) {
		t.Fatal("ErrGameAlreadyStarted should be a rule violation")
	}
}

func TestStartGame(t *testing.T) {
	r := newLobby(t, 4)
	requireErr(t, r.StartGame(), ErrNotEnoughPlayers)
	assertStatus(t, r, models.StatusLobby)

	if err := r.AddPlayer(pid(4), pname(4)); err != nil {
		t.Fatal(err)
	}
	if err := r.StartGame(); err != nil {
		t.Fatal(err)
	}
	assertStatus(t, r, models.StatusElection)

	if r.PresidentID() == "" {
		t.Fatal("no president")
	}
	if r.deck.Len() != 17 {
		t.Fatalf("deck = %d", r.deck.Len())
	}
	for _, p := range r.players {
		if p.Role == "" || !p.IsAlive {
			t.Fatalf("player %s not dealt in: %+v", p.ID, p)
		}
	}
	requireErr(t, r.StartGame(), ErrGameAlreadyStarted)
}

func TestRoleCard(t *testing.T) {
	r := newLobby(t, 5)
	if _, err := r.RoleCard(pid(1)); err != ErrGameNotStarted {
		t.Fatalf("err = %v, want ErrGameNotStarted", err)
	}
	if _, err := r.RoleCard("ghost"); err != ErrPlayerNotFound {
		t.Fatalf("err = %v, want ErrPlayerNotFound", err)
	}

	if err := r.StartGame(); err != nil {
		t.Fatal(err)
	}
	card, err := r.RoleCard(pid(1))
	if err != nil {
		t.Fatal(err)
	}
	if card.Name != pname(1) || card.Role == "" || card.Team != card.Role.Team() || card.TeamMembers == nil {
		t.Fatalf("card = %+v", card)
	}
}

func TestEvictIfStillDisconnected(t *testing.T) {
	r := newLobby(t, 3)
	at := testEpoch.Add(time.Minute)

	r.Disconnect(pid(1), at)
	r.Reconnect(pid(1))
	if r.EvictIfStillDisconnected(pid(1), at) {
		t.Fatal("evicted a player who came back")
	}

	later := at.Add(time.Minute)
	r.Disconnect(pid(1), later)
	if r.EvictIfStillDisconnected(pid(1), at) {
		t.Fatal("stale timer evicted a player")
	}
	if !r.EvictIfStillDisconnected(pid(1), later) {
		t.Fatal("expected eviction")
	}
	if r.HasPlayer(pid(1)) || r.PlayerCount() != 2 {
		t.Fatalf("player still seated, count = %d", r.PlayerCount())
	}
}

func TestEvictHostHandsOver(t *testing.T) {
	r := newLobby(t, 2)
	r.Disconnect(pid(0), testEpoch)
	if !r.EvictIfStillDisconnected(pid(0), testEpoch) {
		t.Fatal("expected eviction")
	}
	if !r.IsHost(pid(1)) {
		t.Fatalf("host = %s, want %s", r.HostID, pid(1))
	}

	r.Disconnect(pid(1), testEpoch)
	r.EvictIfStillDisconnected(pid(1), testEpoch)
	if !r.IsEmpty() {
		t.Fatal("room should be empty")
	}
}

func TestEvictIgnoredAfterStart(t *testing.T) {
	r := newGame(t, 5)
	r.Disconnect(pid(2), testEpoch)
	if r.EvictIfStillDisconnected(pid(2), testEpoch) {
		t.Fatal("players must not be evicted from a running game")
	}
	if r.View(pid(0)).Players[2].Connected {
		t.Fatal("player should show as disconnected")
	}
}

func TestInfo(t *testing.T) {
	r := newLobby(t, 3)
	info := r.Info()
	if info.RoomCode != "ABCDEF" || info.PlayerCount != 3 || info.Status != models.StatusLobby {
		t.Fatalf("info = %+v", info)
	}
	if !info.Players[0].IsHost || info.Players[1].IsHost {
		t.Fatalf("host flags = %+v", info.Players)
	}
}

func TestPlayerCountMessage(t *testing.T) {
	tests := []struct {
		count int
		ok    bool
		msg   string
	}{
		{3, false, "Need 2 more players to start"},
		{4, false, "Need 1 more player to start"},
		{5, true, "Ready to start!"},
		{10, true, "Ready to start!"},
		{11, false, "Maximum 10 players allowed"},
	}
	for _, tt := range tests {
		ok, msg := PlayerCountMessage(tt.count)
		if ok != tt.ok || msg != tt.msg {
			t.Errorf("PlayerCountMessage(%d) = %v, %q", tt.count, ok, msg)
		}
	}
}

func TestRoomCodes(t *testing.T) {
	for range 50 {
		code := GenerateRoomCode()
		if !ValidRoomCode(code) {
			t.Fatalf("generated invalid code %q", code)
		}
		if strings.ContainsAny(code, "IO01") {
			t.Fatalf("code %q contains an ambiguous character", code)
		}
	}
	for _, bad := range []string{"", "abcdef", "ABCDE", "ABCDEFG", "ABC-EF"} {
		if ValidRoomCode(bad) {
			t.Errorf("ValidRoomCode(%q) = true", bad)
		}
	}
}
