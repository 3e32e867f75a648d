package game

import (
	"slices"

	"github.com/aaronzipp/banker-and-robber/internal/models"
)

// View projects the room for one viewer. Other players' roles stay hidden
// until the game is over; the hand is shown only to whoever holds it and
// peeked policies only to the president
func (r *Room) View(viewerID string) models.GameView {
	v := models.GameView{
		RoomCode:        r.Code,
		Status:          r.status,
		HostID:          r.HostID,
		Players:         make([]models.PlayerView, 0, len(r.players)),
		Policies:        r.policies,
		ElectionTracker: r.electionTracker,
		DeckCount:       r.deck.Len(),
		DiscardCount:    r.deck.DiscardLen(),
		PresidentID:     r.PresidentID(),
		ChancellorID:    r.chancellorID,
		LastPresidentID: r.lastPresidentID,
		LastChancellor:  r.lastChancellorID,
		VotesCast:       len(r.votes),
		VetoUnlocked:    r.vetoUnlocked,
		Winner:          r.winner,
		WinReason:       r.winReason,
		Logs:            r.Logs(),
	}
	_, v.HasVoted = r.votes[viewerID]

	revealRoles := r.status == models.StatusGameOver
	for _, p := range r.players {
		pv := models.PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			IsAlive:   p.IsAlive,
			Connected: p.Connected,
			IsHost:    r.IsHost(p.ID),
		}
		if revealRoles {
			pv.Role = p.Role
		}
		v.Players = append(v.Players, pv)
	}

	if me := r.player(viewerID); me != nil && me.Role != "" {
		card := roleCard(me)
		v.Me = &card
	}

	if r.session != nil {
		v.TurnStep = r.session.step
		v.VetoRequested = r.session.step == models.StepVetoPending
		if r.holdsHand(viewerID) {
			v.Hand = slices.Clone(r.session.hand)
		}
	}

	if r.executive != nil {
		v.ExecutiveAction = r.executive.action
		if viewerID != "" && viewerID == v.PresidentID {
			v.PeekedPolicies = slices.Clone(r.executive.peeked)
		}
	}
	return v
}

func (r *Room) holdsHand(viewerID string) bool {
	if viewerID == "" || r.session == nil {
		return false
	}
	switch r.session.step {
	case models.StepPresidentDiscard:
		return viewerID == r.PresidentID()
	case models.StepChancellorDiscard, models.StepVetoPending:
		return viewerID == r.chancellorID
	}
	return false
}
