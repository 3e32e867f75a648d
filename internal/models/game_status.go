package models

// GameStatus represents the master phase of a room
type GameStatus string

const (
	StatusLobby       GameStatus = "LOBBY"
	StatusElection    GameStatus = "ELECTION"
	StatusLegislative GameStatus = "LEGISLATIVE"
	StatusExecutive   GameStatus = "EXECUTIVE"
	StatusGameOver    GameStatus = "GAME_OVER"
)

// TurnStep is the sub-phase of a legislative session
type TurnStep string

const (
	StepPresidentDiscard  TurnStep = "PRESIDENT_DISCARD"
	StepChancellorDiscard TurnStep = "CHANCELLOR_DISCARD"
	StepVetoPending       TurnStep = "VETO_PENDING"
)

// ExecutiveAction is a presidential power unlocked by robber policies
type ExecutiveAction string

const (
	ActionNone               ExecutiveAction = ""
	ActionInvestigateLoyalty ExecutiveAction = "INVESTIGATE_LOYALTY"
	ActionPolicyPeek         ExecutiveAction = "POLICY_PEEK"
	ActionSpecialElection    ExecutiveAction = "SPECIAL_ELECTION"
	ActionExecution          ExecutiveAction = "EXECUTION"
)

// Valid reports whether a is one of the known executive actions
func (a ExecutiveAction) Valid() bool {
	switch a {
	case ActionInvestigateLoyalty, ActionPolicyPeek, ActionSpecialElection, ActionExecution:
		return true
	}
	return false
}

// NeedsTarget reports whether the action is aimed at a player
func (a ExecutiveAction) NeedsTarget() bool {
	return a != ActionPolicyPeek && a != ActionNone
}
