package models

// Policy is a card in the policy deck
type Policy string

const (
	PolicyBanker Policy = "banker"
	PolicyRobber Policy = "robber"
)

// PolicyCount tracks enacted policies per side
type PolicyCount struct {
	Banker int `json:"banker"`
	Robber int `json:"robber"`
}

// GameView is the room snapshot sent to one viewer
type GameView struct {
	RoomCode        string          `json:"roomCode"`
	Status          GameStatus      `json:"status"`
	HostID          string          `json:"hostId"`
	Players         []PlayerView    `json:"players"`
	Policies        PolicyCount     `json:"policies"`
	ElectionTracker int             `json:"electionTracker"`
	DeckCount       int             `json:"deckCount"`
	DiscardCount    int             `json:"discardCount"`
	PresidentID     string          `json:"presidentId,omitempty"`
	ChancellorID    string          `json:"chancellorId,omitempty"`
	LastPresidentID string          `json:"lastPresidentId,omitempty"`
	LastChancellor  string          `json:"lastChancellorId,omitempty"`
	VotesCast       int             `json:"votesCast"`
	HasVoted        bool            `json:"hasVoted"`
	TurnStep        TurnStep        `json:"turnStep,omitempty"`
	VetoUnlocked    bool            `json:"vetoUnlocked"`
	VetoRequested   bool            `json:"vetoRequested"`
	Hand            []Policy        `json:"hand,omitempty"` // only for the player holding the cards
	ExecutiveAction ExecutiveAction `json:"executiveAction,omitempty"`
	PeekedPolicies  []Policy        `json:"peekedPolicies,omitempty"` // president only
	Winner          Team            `json:"winner,omitempty"`
	WinReason       string          `json:"winReason,omitempty"`
	Logs            []string        `json:"logs"`
	Me              *RoleCard       `json:"me,omitempty"`
}
