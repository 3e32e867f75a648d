package game

import (
	"github.com/aaronzipp/banker-and-robber/internal/models"
)

func (r *Room) startLegislativeSession() {
	r.status = models.StatusLegislative
	if r.deck.NeedsReshuffle(HandSize) {
		r.addLog("Deck reshuffled")
	}
	hand, err := r.deck.Draw(HandSize)
	if err != nil {
		// 17 cards never run this low before a side wins; keep the room playable anyway
		r.addLog("Policy deck exhausted")
		r.advancePresident()
		return
	}
	r.session = &legislativeSession{hand: hand, step: models.StepPresidentDiscard}
}

// Hand returns the cards of the running legislative session
func (r *Room) Hand() []models.Policy {
	if r.session == nil {
		return nil
	}
	return append([]models.Policy(nil), r.session.hand...)
}

// PresidentDiscard discards hand[idx] and passes the rest to the chancellor
func (r *Room) PresidentDiscard(idx int) error {
	if err := r.requireStep(models.StepPresidentDiscard); err != nil {
		return err
	}
	if err := r.discardFromHand(idx); err != nil {
		return err
	}
	r.session.step = models.StepChancellorDiscard
	r.addLog("President discarded a policy")
	return nil
}

// ChancellorDiscard discards hand[idx] and enacts the remaining card
func (r *Room) ChancellorDiscard(idx int) error {
	if err := r.requireStep(models.StepChancellorDiscard); err != nil {
		return err
	}
	if err := r.discardFromHand(idx); err != nil {
		return err
	}
	enacted := r.session.hand[0]
	r.session = nil
	r.addLog("Chancellor discarded a policy")
	r.enactPolicy(enacted, false)
	return nil
}

// RequestVeto asks the president to discard the whole hand. It needs the veto
// power and can be used once per session
func (r *Room) RequestVeto() error {
	if err := r.requireStep(models.StepChancellorDiscard); err != nil {
		return err
	}
	if !r.vetoUnlocked {
		return ErrVetoLocked
	}
	if r.session.vetoDeclined {
		return ErrVetoAlreadyDeclined
	}
	r.session.step = models.StepVetoPending
	r.addLog("Chancellor requested a Veto!")
	return nil
}

// ResolveVeto answers a pending veto. An approved veto counts as a failed
// government; a declined one sends the chancellor back to discarding
func (r *Room) ResolveVeto(approved bool) error {
	if err := r.requireStep(models.StepVetoPending); err != nil {
		return err
	}

	if !approved {
		r.session.step = models.StepChancellorDiscard
		r.session.vetoDeclined = true
		r.addLog("President declined the Veto. Chancellor must discard.")
		return nil
	}

	r.addLog("President accepted the Veto. Policies discarded.")
	r.deck.Discard(r.session.hand...)
	r.session = nil
	r.failGovernment("Three failed elections (Veto). Chaos enacted!")
	return nil
}

// VetoUnlocked reports whether the veto power is available
func (r *Room) VetoUnlocked() bool {
	return r.vetoUnlocked
}

func (r *Room) requireStep(step models.TurnStep) error {
	if err := r.requireStatus(models.StatusLegislative); err != nil {
		return err
	}
	if r.session.step != step {
		return illegalState("Waiting for %s", r.session.step)
	}
	return nil
}

func (r *Room) discardFromHand(idx int) error {
	if idx < 0 || idx >= len(r.session.hand) {
		return invalid("Policy index must be between 0 and %d", len(r.session.hand)-1)
	}
	discarded := r.session.hand[idx]
	r.session.hand = append(r.session.hand[:idx], r.session.hand[idx+1:]...)
	r.deck.Discard(discarded)
	return nil
}

// enactPolicy applies a policy, checks the win conditions and unlocks powers.
// Chaos policies never grant an executive action and leave advancing the
// president to the caller
func (r *Room) enactPolicy(p models.Policy, chaos bool) {
	switch p {
	case models.PolicyBanker:
		r.policies.Banker++
		r.addLog("Banker Policy Enacted")
	case models.PolicyRobber:
		r.policies.Robber++
		r.addLog("Robber Policy Enacted")
	}

	if r.policies.Banker >= BankerPoliciesToWin {
		r.gameOver(models.TeamBanker, "5 Banker policies enacted")
		return
	}
	if r.policies.Robber >= RobberPoliciesToWin {
		r.gameOver(models.TeamRobber, "6 Robber policies enacted")
		return
	}

	if p == models.PolicyRobber {
		if r.policies.Robber >= VetoUnlockAt && !r.vetoUnlocked {
			r.vetoUnlocked = true
			r.addLog("Veto Power unlocked for future sessions!")
		}
		if !chaos {
			if action := ExecutiveActionFor(r.policies.Robber, len(r.players)); action != models.ActionNone {
				r.status = models.StatusExecutive
				r.executive = &executiveContext{action: action}
				r.addLog("Presidential Power Unlocked: %s", action)
				return
			}
		}
	}

	if !chaos {
		r.advancePresident()
	}
}

func (r *Room) enactTopPolicy() {
	if r.deck.NeedsReshuffle(1) {
		r.addLog("Deck reshuffled")
	}
	top, err := r.deck.Draw(1)
	if err != nil {
		r.addLog("Policy deck exhausted")
		return
	}
	r.enactPolicy(top[0], true)
}
