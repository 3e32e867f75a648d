package game

const (
	// MinPlayers is the minimum number of players required to start a game
	MinPlayers = 5

	// MaxPlayers is the room capacity
	MaxPlayers = 10

	// DeckRobberPolicies and DeckBankerPolicies make up the 17-card policy deck
	DeckRobberPolicies = 11
	DeckBankerPolicies = 6

	// HandSize is the number of policies drawn for a legislative session
	HandSize = 3

	// PeekSize is the number of policies revealed by a policy peek
	PeekSize = 3

	// BankerPoliciesToWin and RobberPoliciesToWin end the game when reached
	BankerPoliciesToWin = 5
	RobberPoliciesToWin = 6

	// MastermindDangerZone is the robber policy count from which electing the
	// mastermind as chancellor wins the game for the robbers
	MastermindDangerZone = 3

	// VetoUnlockAt is the robber policy count that permanently unlocks the veto
	VetoUnlockAt = 5

	// ChaosThreshold is the number of failed governments that forces the top policy
	ChaosThreshold = 3

	// SmallGameMaxPlayers is the largest game where the mastermind knows the robbers
	SmallGameMaxPlayers = 6

	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6

	// RoomCodeChars are the characters used for generating room codes (excluding ambiguous chars)
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)
