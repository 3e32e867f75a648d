package game

import (
	"errors"
	"fmt"
)

// Code classifies a game error
type Code string

const (
	// CodeValidation marks a malformed command
	CodeValidation Code = "VALIDATION"
	// CodeNotFound marks an unknown room or player
	CodeNotFound Code = "NOT_FOUND"
	// CodeIllegalState marks a command issued in the wrong phase
	CodeIllegalState Code = "ILLEGAL_STATE"
	// CodeRuleViolation marks a command the rules forbid
	CodeRuleViolation Code = "RULE_VIOLATION"
)

// Error is the domain error returned by room operations
type Error struct {
	Code    Code
	Message string
	kind    bool
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Is matches kind sentinels (ErrValidation, ErrIllegalState, ...) by code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || !t.kind {
		return false
	}
	return e.Code == t.Code
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func illegalState(format string, args ...any) *Error {
	return newError(CodeIllegalState, fmt.Sprintf(format, args...))
}

func invalid(format string, args ...any) *Error {
	return newError(CodeValidation, fmt.Sprintf(format, args...))
}

// Kind sentinels, matched by code through errors.Is
var (
	ErrValidation    = &Error{Code: CodeValidation, Message: "validation error", kind: true}
	ErrNotFound      = &Error{Code: CodeNotFound, Message: "not found", kind: true}
	ErrIllegalState  = &Error{Code: CodeIllegalState, Message: "illegal state", kind: true}
	ErrRuleViolation = &Error{Code: CodeRuleViolation, Message: "rule violation", kind: true}
)

var (
	ErrRoomNotFound   = newError(CodeNotFound, "Room not found")
	ErrPlayerNotFound = newError(CodeNotFound, "Player not found")

	ErrGameAlreadyStarted  = newError(CodeRuleViolation, "Game already started")
	ErrRoomFull            = newError(CodeRuleViolation, "Room full")
	ErrNameTaken           = newError(CodeRuleViolation, "Name taken")
	ErrAlreadyJoined       = newError(CodeRuleViolation, "Already joined")
	ErrNotEnoughPlayers    = newError(CodeRuleViolation, "Need 5+ players")
	ErrInvalidPlayerCount  = newError(CodeRuleViolation, "Invalid player count. Must be between 5 and 10.")
	ErrSelfNomination      = newError(CodeRuleViolation, "Cannot nominate self")
	ErrTermLimited         = newError(CodeRuleViolation, "Term limited")
	ErrInvalidNominee      = newError(CodeRuleViolation, "Invalid nominee")
	ErrVetoLocked          = newError(CodeRuleViolation, "Veto power is not unlocked")
	ErrVetoAlreadyDeclined = newError(CodeRuleViolation, "Veto already declined this session")
	ErrInvalidTarget       = newError(CodeRuleViolation, "Invalid target")
	ErrAlreadyInvestigated = newError(CodeRuleViolation, "Player was already investigated")
	ErrNotAuthorized       = newError(CodeRuleViolation, "Not your turn")

	ErrGameNotStarted = newError(CodeIllegalState, "Game not started yet")
	ErrGameOver       = newError(CodeIllegalState, "Game is over")
	ErrDeckExhausted  = newError(CodeIllegalState, "Policy deck exhausted")
)

// CodeOf returns the code of a game error, or "" for foreign errors
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsSurfaced reports whether err should be shown to the client that caused it.
// Illegal-state errors usually come from stale clients and are swallowed
func IsSurfaced(err error) bool {
	switch CodeOf(err) {
	case CodeValidation, CodeNotFound, CodeRuleViolation:
		return true
	}
	return false
}

// NewValidationError reports a malformed command
func NewValidationError(message string) *Error {
	return newError(CodeValidation, message)
}

// NewRuleViolation reports a command the rules or the room forbid
func NewRuleViolation(message string) *Error {
	return newError(CodeRuleViolation, message)
}
