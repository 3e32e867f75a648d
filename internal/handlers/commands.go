package handlers

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/aaronzipp/banker-and-robber/internal/game"
	"github.com/aaronzipp/banker-and-robber/internal/models"
)

// Inbound command types
const (
	CmdCreateGame         = "create_game"
	CmdJoinGame           = "join_game"
	CmdStartGame          = "start_game"
	CmdNominateChancellor = "nominate_chancellor"
	CmdSubmitVote         = "submit_vote"
	CmdPresidentDiscard   = "president_discard"
	CmdChancellorDiscard  = "chancellor_discard"
	CmdVetoRequest        = "veto_request"
	CmdVetoResponse       = "veto_response"
	CmdExecutiveAction    = "executive_action"
	CmdEndExecutiveAction = "end_executive_action"
)

// MaxNameLength bounds host and player names
const MaxNameLength = 50

// Envelope is one inbound message
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// CreateGameRequest opens a room. HostID is generated when empty
type CreateGameRequest struct {
	HostName string `json:"hostName"`
	HostID   string `json:"hostId"`
}

// JoinGameRequest seats a player. PlayerID is generated when empty
type JoinGameRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// RoomRequest carries only the room code
type RoomRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId,omitempty"`
}

// NominateRequest names the chancellor candidate
type NominateRequest struct {
	RoomCode     string `json:"roomCode"`
	ChancellorID string `json:"chancellorId"`
}

// VoteRequest is a ja (true) or nein (false) vote
type VoteRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	Vote     *bool  `json:"vote"`
}

// DiscardRequest picks the policy to discard
type DiscardRequest struct {
	RoomCode  string `json:"roomCode"`
	PolicyIdx *int   `json:"policyIdx"`
}

// VetoResponseRequest answers a veto request
type VetoResponseRequest struct {
	RoomCode string `json:"roomCode"`
	Approved *bool  `json:"approved"`
}

// ExecutiveActionRequest uses a presidential power
type ExecutiveActionRequest struct {
	RoomCode string                 `json:"roomCode"`
	Action   models.ExecutiveAction `json:"action"`
	TargetID string                 `json:"targetId"`
}

// decode unmarshals a payload and validates it
func decode[T interface{ Validate() error }](data json.RawMessage) (T, error) {
	var req T
	if len(data) == 0 {
		return req, game.NewValidationError("Invalid data format")
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, game.NewValidationError("Invalid data format")
	}
	return req, req.Validate()
}

func validateName(name, label string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return game.NewValidationError(label + " is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return game.NewValidationError(label + " too long (max 50 characters)")
	}
	return nil
}

func validateRoomCode(code string) error {
	if !game.ValidRoomCode(code) {
		return game.NewValidationError("Invalid room code format")
	}
	return nil
}

func validatePolicyIndex(idx *int) error {
	if idx == nil || *idx < 0 || *idx > 2 {
		return game.NewValidationError("Policy index must be 0, 1, or 2")
	}
	return nil
}

// Validate implements validation for create_game
func (r CreateGameRequest) Validate() error {
	return validateName(r.HostName, "Host name")
}

// Validate implements validation for join_game
func (r JoinGameRequest) Validate() error {
	if err := validateRoomCode(r.RoomCode); err != nil {
		return err
	}
	return validateName(r.PlayerName, "Player name")
}

// Validate implements validation for commands that only name a room
func (r RoomRequest) Validate() error {
	return validateRoomCode(r.RoomCode)
}

// Validate implements validation for nominate_chancellor
func (r NominateRequest) Validate() error {
	if err := validateRoomCode(r.RoomCode); err != nil {
		return err
	}
	if strings.TrimSpace(r.ChancellorID) == "" {
		return game.NewValidationError("Chancellor ID is required")
	}
	return nil
}

// Validate implements validation for submit_vote
func (r VoteRequest) Validate() error {
	if err := validateRoomCode(r.RoomCode); err != nil {
		return err
	}
	if r.Vote == nil {
		return game.NewValidationError("Vote must be true or false")
	}
	return nil
}

// Validate implements validation for the discard commands
func (r DiscardRequest) Validate() error {
	if err := validateRoomCode(r.RoomCode); err != nil {
		return err
	}
	return validatePolicyIndex(r.PolicyIdx)
}

// Validate implements validation for veto_response
func (r VetoResponseRequest) Validate() error {
	if err := validateRoomCode(r.RoomCode); err != nil {
		return err
	}
	if r.Approved == nil {
		return game.NewValidationError("Approved must be true or false")
	}
	return nil
}

// Validate implements validation for executive_action
func (r ExecutiveActionRequest) Validate() error {
	if err := validateRoomCode(r.RoomCode); err != nil {
		return err
	}
	if !r.Action.Valid() {
		return game.NewValidationError("Invalid executive action")
	}
	if r.Action.NeedsTarget() && strings.TrimSpace(r.TargetID) == "" {
		return game.NewValidationError("Target ID is required")
	}
	return nil
}
