package game

import (
	"fmt"
	"time"

	"github.com/aaronzipp/banker-and-robber/internal/models"
)

// AddPlayer seats a new player. Only possible in the lobby
func (r *Room) AddPlayer(id, name string) error {
	if r.status != models.StatusLobby {
		return ErrGameAlreadyStarted
	}
	if r.HasPlayer(id) {
		return ErrAlreadyJoined
	}
	if len(r.players) >= MaxPlayers {
		return ErrRoomFull
	}
	if r.nameTaken(name) {
		return ErrNameTaken
	}

	r.players = append(r.players, &Player{
		ID:        id,
		Name:      name,
		IsAlive:   true,
		Connected: true,
	})
	r.addLog("%s joined the lobby", name)
	return nil
}

// StartGame deals roles, shuffles the deck and picks the first president
func (r *Room) StartGame() error {
	if r.status != models.StatusLobby {
		return ErrGameAlreadyStarted
	}
	if len(r.players) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	seats := make([]Seat, len(r.players))
	for i, p := range r.players {
		seats[i] = Seat{ID: p.ID, Name: p.Name}
	}
	assigned, err := AssignRoles(r.rng, seats)
	if err != nil {
		return err
	}
	for i, a := range assigned {
		r.players[i].Role = a.Role
		r.players[i].Knowledge = a.Knowledge
	}
	r.addLog("Roles assigned. Check your secret identity!")

	r.deck.Reset()
	r.addLog("Policy deck shuffled")

	r.presidentIdx = r.rng.IntN(len(r.players))
	r.status = models.StatusElection
	r.addLog("Game started! %s is the first Presidential Candidate.", r.players[r.presidentIdx].Name)
	return nil
}

// Disconnect marks a player as gone. It reports whether the player exists
func (r *Room) Disconnect(id string, at time.Time) bool {
	p := r.player(id)
	if p == nil {
		return false
	}
	p.Connected = false
	p.DisconnectedAt = at
	return true
}

// Reconnect marks a player as present again. It reports whether the player exists
func (r *Room) Reconnect(id string) bool {
	p := r.player(id)
	if p == nil {
		return false
	}
	p.Connected = true
	p.DisconnectedAt = time.Time{}
	return true
}

// EvictIfStillDisconnected removes a lobby player whose disconnect stamp still
// equals since. A reconnect or a later disconnect changes the stamp, so a stale
// timer never removes a player who came back
func (r *Room) EvictIfStillDisconnected(id string, since time.Time) bool {
	if r.status != models.StatusLobby {
		return false
	}
	idx := r.playerIndex(id)
	if idx < 0 {
		return false
	}
	p := r.players[idx]
	if p.Connected || !p.DisconnectedAt.Equal(since) {
		return false
	}

	r.players = append(r.players[:idx], r.players[idx+1:]...)
	r.addLog("%s left the lobby", p.Name)
	if r.HostID == id && len(r.players) > 0 {
		r.HostID = r.players[0].ID
		r.addLog("%s is now the host", r.players[0].Name)
	}
	return true
}

// IsEmpty reports whether every seat has been vacated
func (r *Room) IsEmpty() bool {
	return len(r.players) == 0
}

// Info returns the public lobby description of the room
func (r *Room) Info() models.RoomInfo {
	info := models.RoomInfo{
		RoomCode:    r.Code,
		Status:      r.status,
		PlayerCount: len(r.players),
		Players:     make([]models.LobbyPlayer, 0, len(r.players)),
	}
	for _, p := range r.players {
		info.Players = append(info.Players, models.LobbyPlayer{ID: p.ID, Name: p.Name, IsHost: r.IsHost(p.ID)})
	}
	return info
}

// RoleCard returns the secret identity of a player once roles are dealt
func (r *Room) RoleCard(id string) (models.RoleCard, error) {
	p := r.player(id)
	if p == nil {
		return models.RoleCard{}, ErrPlayerNotFound
	}
	if r.status == models.StatusLobby {
		return models.RoleCard{}, ErrGameNotStarted
	}
	return roleCard(p), nil
}

func roleCard(p *Player) models.RoleCard {
	return models.RoleCard{
		Name:            p.Name,
		Role:            p.Role,
		Team:            p.Team(),
		TeamMembers:     p.Knowledge.TeamMembers,
		Mastermind:      p.Knowledge.Mastermind,
		BlindMastermind: p.Knowledge.BlindMastermind,
	}
}

// PlayerCountMessage explains whether a roster of count players can start
func PlayerCountMessage(count int) (bool, string) {
	switch {
	case count < MinPlayers:
		missing := MinPlayers - count
		suffix := ""
		if missing > 1 {
			suffix = "s"
		}
		return false, fmt.Sprintf("Need %d more player%s to start", missing, suffix)
	case count > MaxPlayers:
		return false, fmt.Sprintf("Maximum %d players allowed", MaxPlayers)
	default:
		return true, "Ready to start!"
	}
}
