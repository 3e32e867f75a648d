package game

import (
	"math/rand/v2"
	"slices"

	"github.com/aaronzipp/banker-and-robber/internal/models"
)

// RoleConfig is the number of each role dealt for a player count
type RoleConfig struct {
	Bankers     int
	Robbers     int
	Masterminds int
}

var roleConfigs = map[int]RoleConfig{
	5:  {Bankers: 3, Robbers: 1, Masterminds: 1},
	6:  {Bankers: 4, Robbers: 1, Masterminds: 1},
	7:  {Bankers: 4, Robbers: 2, Masterminds: 1},
	8:  {Bankers: 5, Robbers: 2, Masterminds: 1},
	9:  {Bankers: 5, Robbers: 3, Masterminds: 1},
	10: {Bankers: 6, Robbers: 3, Masterminds: 1},
}

// RoleConfigFor returns the role table entry for a player count
func RoleConfigFor(playerCount int) (RoleConfig, bool) {
	cfg, ok := roleConfigs[playerCount]
	return cfg, ok
}

// Seat is a roster entry before roles are dealt
type Seat struct {
	ID   string
	Name string
}

// Knowledge is the secret information a player learns at the start of the game
type Knowledge struct {
	TeamMembers     []models.TeamMember
	Mastermind      string
	BlindMastermind bool
}

// Assignment is a seat with its dealt role
type Assignment struct {
	Seat
	Role      models.Role
	Knowledge Knowledge
}

// AssignRoles deals roles to seats in roster order and computes what each
// player knows about their team
func AssignRoles(rng *rand.Rand, seats []Seat) ([]Assignment, error) {
	cfg, ok := RoleConfigFor(len(seats))
	if !ok {
		return nil, ErrInvalidPlayerCount
	}

	pool := make([]models.Role, 0, len(seats))
	for range cfg.Bankers {
		pool = append(pool, models.RoleBanker)
	}
	for range cfg.Robbers {
		pool = append(pool, models.RoleRobber)
	}
	for range cfg.Masterminds {
		pool = append(pool, models.RoleMastermind)
	}
	roles := Shuffle(rng, pool)

	var robbers []int
	mastermind := -1
	for i, role := range roles {
		switch role {
		case models.RoleRobber:
			robbers = append(robbers, i)
		case models.RoleMastermind:
			mastermind = i
		}
	}
	robberTeam := append(slices.Clone(robbers), mastermind)

	out := make([]Assignment, len(seats))
	for i, seat := range seats {
		a := Assignment{
			Seat:      seat,
			Role:      roles[i],
			Knowledge: Knowledge{TeamMembers: []models.TeamMember{}},
		}
		switch a.Role {
		case models.RoleRobber:
			a.Knowledge.TeamMembers = teammates(seats, roles, robberTeam, i)
			a.Knowledge.Mastermind = seats[mastermind].Name
		case models.RoleMastermind:
			if len(seats) <= SmallGameMaxPlayers {
				a.Knowledge.TeamMembers = teammates(seats, roles, robbers, i)
			} else {
				a.Knowledge.BlindMastermind = true
			}
		}
		out[i] = a
	}
	return out, nil
}

func teammates(seats []Seat, roles []models.Role, idxs []int, self int) []models.TeamMember {
	members := make([]models.TeamMember, 0, len(idxs))
	for _, i := range idxs {
		if i == self {
			continue
		}
		members = append(members, models.TeamMember{Name: seats[i].Name, Role: roles[i]})
	}
	return members
}
