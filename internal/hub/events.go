package hub

// Outbound event type constants
const (
	EventGameCreated         = "game_created"
	EventGameJoined          = "game_joined"
	EventGameUpdated         = "game_updated"
	EventGameStarted         = "game_started"
	EventInvestigationResult = "investigation_result"
	EventPolicyPeek          = "policy_peek"
	EventErrorMessage        = "error_message"
	EventPlayerPresence      = "player_presence"
	EventRoomClosed          = "room_closed"
)
