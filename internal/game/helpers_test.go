package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/aaronzipp/banker-and-robber/internal/models"
)

var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func pid(i int) string  { return fmt.Sprintf("p%d", i) }
func pname(i int) string { return fmt.Sprintf("Player%d", i) }

// newLobby returns a room in LOBBY with n players p0..p(n-1); p0 is host
func newLobby(t *testing.T, n int) *Room {
	t.Helper()
	r, err := NewRoom("ABCDEF", pid(0), pname(0), WithRand(testRand()), WithClock(func() time.Time { return testEpoch }))
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	for i := 1; i < n; i++ {
		if err := r.AddPlayer(pid(i), pname(i)); err != nil {
			t.Fatalf("AddPlayer(%d): %v", i, err)
		}
	}
	return r
}

// newGame starts a game with n players and pins the seating so tests are
// independent of the shuffle: p0 is president, the last seat is the
// mastermind, the seats before it are robbers and everyone else is a banker
func newGame(t *testing.T, n int) *Room {
	t.Helper()
	r := newLobby(t, n)
	if err := r.StartGame(); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	cfg, _ := RoleConfigFor(n)
	for i, p := range r.players {
		switch {
		case i == n-1:
			p.Role = models.RoleMastermind
		case i >= n-1-cfg.Robbers:
			p.Role = models.RoleRobber
		default:
			p.Role = models.RoleBanker
		}
	}
	r.presidentIdx = 0
	return r
}

// elect nominates chancellorID and has every living player vote ja
func elect(t *testing.T, r *Room, chancellorID string) {
	t.Helper()
	if err := r.NominateChancellor(chancellorID); err != nil {
		t.Fatalf("NominateChancellor(%s): %v", chancellorID, err)
	}
	voteAll(t, r, true)
}

// voteAll casts the same vote for every living player
func voteAll(t *testing.T, r *Room, ja bool) *ElectionResult {
	t.Helper()
	var res *ElectionResult
	for _, p := range r.players {
		if p.IsAlive {
			res = r.RegisterVote(p.ID, ja)
		}
	}
	if res == nil {
		t.Fatal("election did not resolve")
	}
	return res
}

// stackHand replaces the legislative hand
func stackHand(t *testing.T, r *Room, cards ...models.Policy) {
	t.Helper()
	if r.session == nil {
		t.Fatal("no legislative session")
	}
	r.session.hand = cards
}

func assertStatus(t *testing.T, r *Room, want models.GameStatus) {
	t.Helper()
	if r.Status() != want {
		t.Fatalf("status = %s, want %s", r.Status(), want)
	}
}

func requireErr(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

// cardsInPlay counts every policy card the room accounts for
func cardsInPlay(r *Room) int {
	n := r.deck.Len() + r.deck.DiscardLen() + r.policies.Banker + r.policies.Robber
	if r.session != nil {
		n += len(r.session.hand)
	}
	return n
}
