package game

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/aaronzipp/banker-and-robber/internal/models"
)

// Player is a seat in a room
type Player struct {
	ID             string
	Name           string
	Role           models.Role
	IsAlive        bool
	Connected      bool
	DisconnectedAt time.Time
	Knowledge      Knowledge
}

// Team derives the player's team from their role
func (p *Player) Team() models.Team {
	return p.Role.Team()
}

// LogEntry is one line of the room's audit trail
type LogEntry struct {
	At      time.Time
	Message string
}

// String formats the entry the way clients display it
func (e LogEntry) String() string {
	return "[" + e.At.Format(time.TimeOnly) + "] " + e.Message
}

// legislativeSession exists only while the room is LEGISLATIVE
type legislativeSession struct {
	hand         []models.Policy
	step         models.TurnStep
	vetoDeclined bool
}

// executiveContext exists only while the room is EXECUTIVE
type executiveContext struct {
	action   models.ExecutiveAction
	peeked   []models.Policy
	resolved bool
}

// Room is the authoritative state of one game.
//
// Room is not safe for concurrent use on its own: callers hold Lock (or
// RLock for read-only access) around every call, which serializes commands
// within a room
type Room struct {
	Code      string
	HostID    string
	CreatedAt time.Time

	mu  sync.RWMutex
	rng *rand.Rand
	now func() time.Time

	players []*Player
	status  models.GameStatus

	policies        models.PolicyCount
	electionTracker int
	deck            *Deck

	presidentIdx          int
	specialElectionReturn int // -1 when no special election is pending
	chancellorID          string
	lastChancellorID      string
	lastPresidentID       string

	votes        map[string]bool
	vetoUnlocked bool

	session      *legislativeSession
	executive    *executiveContext
	investigated map[string]bool

	logs      []LogEntry
	winner    models.Team
	winReason string
}

// Option configures a Room
type Option func(*Room)

// WithRand sets the random source used for roles, deck and first president
func WithRand(rng *rand.Rand) Option {
	return func(r *Room) { r.rng = rng }
}

// WithClock sets the time source used for logs and presence
func WithClock(now func() time.Time) Option {
	return func(r *Room) { r.now = now }
}

// NewRoom creates a room in LOBBY with the host seated
func NewRoom(code, hostID, hostName string, opts ...Option) (*Room, error) {
	r := &Room{
		Code:                  code,
		HostID:                hostID,
		status:                models.StatusLobby,
		presidentIdx:          -1,
		specialElectionReturn: -1,
		votes:                 map[string]bool{},
		investigated:          map[string]bool{},
		now:                   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = NewRand()
	}
	r.deck = NewDeck(r.rng)
	r.CreatedAt = r.now()
	r.addLog("Game created by %s", hostName)
	if err := r.AddPlayer(hostID, hostName); err != nil {
		return nil, err
	}
	return r, nil
}

// Lock acquires the room's write lock
func (r *Room) Lock() {
	r.mu.Lock()
}

// Unlock releases the room's write lock
func (r *Room) Unlock() {
	r.mu.Unlock()
}

// RLock acquires the room's read lock
func (r *Room) RLock() {
	r.mu.RLock()
}

// RUnlock releases the room's read lock
func (r *Room) RUnlock() {
	r.mu.RUnlock()
}

// Status returns the master phase
func (r *Room) Status() models.GameStatus {
	return r.status
}

// PlayerCount returns the number of seated players, dead or alive
func (r *Room) PlayerCount() int {
	return len(r.players)
}

// HasPlayer reports whether id is seated in the room
func (r *Room) HasPlayer(id string) bool {
	return r.player(id) != nil
}

// PlayerName returns the name of a seated player
func (r *Room) PlayerName(id string) (string, bool) {
	p := r.player(id)
	if p == nil {
		return "", false
	}
	return p.Name, true
}

// IsHost reports whether id is the room host
func (r *Room) IsHost(id string) bool {
	return id != "" && r.HostID == id
}

// PresidentID returns the current presidential candidate, "" before the game starts
func (r *Room) PresidentID() string {
	if p := r.president(); p != nil {
		return p.ID
	}
	return ""
}

// ChancellorID returns the nominated or elected chancellor
func (r *Room) ChancellorID() string {
	return r.chancellorID
}

// Policies returns the enacted policy counts
func (r *Room) Policies() models.PolicyCount {
	return r.policies
}

// ElectionTracker returns the failed-government counter
func (r *Room) ElectionTracker() int {
	return r.electionTracker
}

// Winner returns the winning team and reason once the game is over
func (r *Room) Winner() (models.Team, string) {
	return r.winner, r.winReason
}

// PendingAction returns the executive action awaiting the president
func (r *Room) PendingAction() models.ExecutiveAction {
	if r.executive == nil {
		return models.ActionNone
	}
	return r.executive.action
}

// TurnStep returns the legislative sub-phase, "" outside LEGISLATIVE
func (r *Room) TurnStep() models.TurnStep {
	if r.session == nil {
		return ""
	}
	return r.session.step
}

// Logs returns the formatted audit trail
func (r *Room) Logs() []string {
	out := make([]string, len(r.logs))
	for i, e := range r.logs {
		out[i] = e.String()
	}
	return out
}

func (r *Room) player(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) playerIndex(id string) int {
	for i, p := range r.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *Room) president() *Player {
	if r.presidentIdx < 0 || r.presidentIdx >= len(r.players) {
		return nil
	}
	return r.players[r.presidentIdx]
}

func (r *Room) livingCount() int {
	n := 0
	for _, p := range r.players {
		if p.IsAlive {
			n++
		}
	}
	return n
}

func (r *Room) nameTaken(name string) bool {
	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// requireStatus rejects a command issued outside the given phase
func (r *Room) requireStatus(want models.GameStatus) error {
	if r.status == want {
		return nil
	}
	if r.status == models.StatusGameOver {
		return ErrGameOver
	}
	return illegalState("Wrong phase: %s", r.status)
}

// advancePresident moves the candidacy to the next living player, returning
// from a special election first when one is pending
func (r *Room) advancePresident() {
	r.status = models.StatusElection
	r.session = nil
	r.executive = nil

	if r.specialElectionReturn >= 0 {
		r.presidentIdx = r.specialElectionReturn
		r.specialElectionReturn = -1
	}

	n := len(r.players)
	next := r.presidentIdx
	for range n {
		next = (next + 1) % n
		if r.players[next].IsAlive {
			break
		}
	}
	r.presidentIdx = next
	r.chancellorID = ""
	r.votes = map[string]bool{}

	r.addLog("New Round: %s is the Presidential Candidate", r.players[next].Name)
}

func (r *Room) gameOver(winner models.Team, reason string) {
	r.status = models.StatusGameOver
	r.winner = winner
	r.winReason = reason
	r.session = nil
	r.executive = nil
	r.chancellorID = ""
	r.votes = map[string]bool{}
	r.addLog("GAME OVER. %s wins! (%s)", strings.ToUpper(string(winner)), reason)
}
