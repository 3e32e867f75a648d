package game

import (
	"github.com/aaronzipp/banker-and-robber/internal/models"
)

// ElectionResult is the outcome of a completed vote
type ElectionResult struct {
	Ja     int
	Nein   int
	Passed bool
}

// TallyVotes counts ja/nein votes. Ties fail
func TallyVotes(votes map[string]bool) ElectionResult {
	var res ElectionResult
	for _, v := range votes {
		if v {
			res.Ja++
		} else {
			res.Nein++
		}
	}
	res.Passed = res.Ja > res.Nein
	return res
}

// NominateChancellor sets the president's nominee and opens voting
func (r *Room) NominateChancellor(chancellorID string) error {
	if err := r.requireStatus(models.StatusElection); err != nil {
		return err
	}
	if r.chancellorID != "" {
		return illegalState("A chancellor is already nominated")
	}

	president := r.president()
	if chancellorID == president.ID {
		return ErrSelfNomination
	}
	if chancellorID == r.lastChancellorID {
		return ErrTermLimited
	}
	if len(r.players) > 5 && chancellorID == r.lastPresidentID {
		return ErrTermLimited
	}
	nominee := r.player(chancellorID)
	if nominee == nil || !nominee.IsAlive {
		return ErrInvalidNominee
	}

	r.chancellorID = chancellorID
	r.votes = map[string]bool{}
	r.addLog("%s nominated %s for Chancellor", president.Name, nominee.Name)
	return nil
}

// RegisterVote records a living player's vote. Unknown or dead voters and
// votes outside an open election are ignored. The election resolves as soon
// as every living player has voted; the result is returned only then
func (r *Room) RegisterVote(playerID string, vote bool) *ElectionResult {
	if r.status != models.StatusElection || r.chancellorID == "" {
		return nil
	}
	p := r.player(playerID)
	if p == nil || !p.IsAlive {
		return nil
	}

	r.votes[playerID] = vote

	if len(r.votes) == r.livingCount() {
		res := r.resolveElection()
		return &res
	}
	return nil
}

// VotesCast returns how many living players have voted
func (r *Room) VotesCast() int {
	return len(r.votes)
}

func (r *Room) resolveElection() ElectionResult {
	res := TallyVotes(r.votes)
	president := r.president()
	chancellor := r.player(r.chancellorID)

	r.addLog("Election results: %d Ja - %d Nein", res.Ja, res.Nein)

	if !res.Passed {
		r.addLog("Government rejected.")
		r.failGovernment("Three failed elections. Chaos enacted!")
		return res
	}

	r.addLog("Government elected! President: %s, Chancellor: %s", president.Name, chancellor.Name)
	r.electionTracker = 0
	r.lastChancellorID = chancellor.ID
	r.lastPresidentID = president.ID

	if r.policies.Robber >= MastermindDangerZone && chancellor.Role == models.RoleMastermind {
		r.gameOver(models.TeamRobber, "Mastermind elected Chancellor")
		return res
	}

	r.startLegislativeSession()
	return res
}

// failGovernment advances the election tracker after a rejected government or
// an approved veto, enacting the top policy when the tracker hits the threshold
func (r *Room) failGovernment(chaosMessage string) {
	r.electionTracker++
	if r.electionTracker >= ChaosThreshold {
		r.addLog("%s", chaosMessage)
		r.enactTopPolicy()
		r.electionTracker = 0
		r.lastChancellorID = ""
		r.lastPresidentID = ""
		if r.status == models.StatusGameOver {
			return
		}
	}
	r.advancePresident()
}
