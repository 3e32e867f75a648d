package models

// RoomInfo is the public description of a room used by the lobby lookup
type RoomInfo struct {
	RoomCode    string        `json:"roomCode"`
	Status      GameStatus    `json:"status"`
	PlayerCount int           `json:"playerCount"`
	Players     []LobbyPlayer `json:"players"`
}

// LobbyPlayer is a roster entry without any secret data
type LobbyPlayer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// ErrorResponse is the JSON body of a failed HTTP request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
