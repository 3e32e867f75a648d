package game

import (
	"github.com/aaronzipp/banker-and-robber/internal/models"
)

// ExecutiveActionFor returns the power unlocked by the given robber policy count
func ExecutiveActionFor(robberCount, playerCount int) models.ExecutiveAction {
	switch robberCount {
	case 2:
		return models.ActionInvestigateLoyalty
	case 3:
		if playerCount <= SmallGameMaxPlayers {
			return models.ActionPolicyPeek
		}
		return models.ActionSpecialElection
	case 4, 5:
		return models.ActionExecution
	default:
		return models.ActionNone
	}
}

// Secret is information only the acting president may see
type Secret struct {
	Action   models.ExecutiveAction `json:"action"`
	TargetID string                 `json:"targetId,omitempty"`
	Loyalty  string                 `json:"loyalty,omitempty"`
	Policies []models.Policy        `json:"policies,omitempty"`
}

// PerformExecutiveAction carries out the pending presidential power.
//
// EXECUTION and SPECIAL_ELECTION end the executive phase on their own.
// INVESTIGATE_LOYALTY and POLICY_PEEK return a Secret for the president and
// wait for FinishExecutiveAction
func (r *Room) PerformExecutiveAction(action models.ExecutiveAction, targetID string) (*Secret, error) {
	if err := r.requireStatus(models.StatusExecutive); err != nil {
		return nil, err
	}
	if action != r.executive.action {
		return nil, illegalState("Pending action is %s", r.executive.action)
	}
	if r.executive.resolved {
		return nil, illegalState("%s was already used", action)
	}
	president := r.president()

	switch action {
	case models.ActionExecution:
		target, err := r.targetFor(targetID)
		if err != nil {
			return nil, err
		}
		target.IsAlive = false
		r.addLog("%s executed %s", president.Name, target.Name)
		if target.Role == models.RoleMastermind {
			r.gameOver(models.TeamBanker, "Mastermind executed")
			return nil, nil
		}
		r.advancePresident()
		return nil, nil

	case models.ActionInvestigateLoyalty:
		target, err := r.targetFor(targetID)
		if err != nil {
			return nil, err
		}
		if r.investigated[target.ID] {
			return nil, ErrAlreadyInvestigated
		}
		r.investigated[target.ID] = true
		r.executive.resolved = true
		r.addLog("%s investigated %s", president.Name, target.Name)
		return &Secret{Action: action, TargetID: target.ID, Loyalty: target.Team().Label()}, nil

	case models.ActionPolicyPeek:
		peeked, err := r.deck.Peek(PeekSize)
		if err != nil {
			return nil, err
		}
		r.executive.peeked = peeked
		r.executive.resolved = true
		r.addLog("%s peeked at the top 3 policies", president.Name)
		return &Secret{Action: action, Policies: peeked}, nil

	case models.ActionSpecialElection:
		target, err := r.targetFor(targetID)
		if err != nil {
			return nil, err
		}
		r.specialElectionReturn = r.presidentIdx
		r.presidentIdx = r.playerIndex(target.ID)
		r.status = models.StatusElection
		r.chancellorID = ""
		r.votes = map[string]bool{}
		r.executive = nil
		r.addLog("Special Election! %s nominated %s as President", president.Name, target.Name)
		return nil, nil
	}

	return nil, illegalState("Unknown action %s", action)
}

// FinishExecutiveAction closes an investigation or peek and starts the next round
func (r *Room) FinishExecutiveAction() error {
	if err := r.requireStatus(models.StatusExecutive); err != nil {
		return err
	}
	if !r.executive.resolved {
		return illegalState("%s has not been used yet", r.executive.action)
	}
	r.advancePresident()
	r.addLog("Executive action completed. Next round starting...")
	return nil
}

// targetFor resolves a living player other than the president
func (r *Room) targetFor(targetID string) (*Player, error) {
	target := r.player(targetID)
	if target == nil || !target.IsAlive || target == r.president() {
		return nil, ErrInvalidTarget
	}
	return target, nil
}
