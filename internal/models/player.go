package models

// Role is a player's secret identity
type Role string

const (
	RoleBanker     Role = "banker"
	RoleRobber     Role = "robber"
	RoleMastermind Role = "mastermind"
)

// Team is the side a role plays for
type Team string

const (
	TeamBanker Team = "banker"
	TeamRobber Team = "robber"
)

// Team derives the team from the role; empty before roles are assigned
func (r Role) Team() Team {
	switch r {
	case RoleBanker:
		return TeamBanker
	case RoleRobber, RoleMastermind:
		return TeamRobber
	default:
		return ""
	}
}

// Label is the loyalty string revealed by an investigation
func (t Team) Label() string {
	if t == TeamBanker {
		return "Banker"
	}
	return "Robber"
}

// TeamMember is a teammate a player is allowed to know about
type TeamMember struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// PlayerView is the public part of a player
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsAlive   bool   `json:"isAlive"`
	Connected bool   `json:"connected"`
	IsHost    bool   `json:"isHost"`
	Role      Role   `json:"role,omitempty"` // only revealed after the game ends
}

// RoleCard holds what only the player themself may see
type RoleCard struct {
	Name            string       `json:"name"`
	Role            Role         `json:"role"`
	Team            Team         `json:"team"`
	TeamMembers     []TeamMember `json:"teamMembers"`
	Mastermind      string       `json:"mastermind,omitempty"`
	BlindMastermind bool         `json:"blindMastermind,omitempty"`
}
