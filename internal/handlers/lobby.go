package handlers

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/aaronzipp/banker-and-robber/internal/game"
	"github.com/aaronzipp/banker-and-robber/internal/render"
)

// CreatedResponse answers a successful create or join over HTTP
type CreatedResponse struct {
	Success  bool   `json:"success"`
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

// HandleCreateGame opens a room with the caller as host. HTTP callers hold no
// socket, so the host counts as absent until join_game binds one
func (ctx *Context) HandleCreateGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateGameRequest
	if err := parseJSONBody(r, &req); err != nil {
		ctx.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		ctx.writeError(w, err)
		return
	}

	hostID := strings.TrimSpace(req.HostID)
	if hostID == "" {
		hostID = ctx.NewID()
	}
	room, err := ctx.Registry.Create(hostID, strings.TrimSpace(req.HostName))
	if err != nil {
		ctx.writeError(w, err)
		return
	}
	at := ctx.Now()
	room.Lock()
	room.Disconnect(hostID, at)
	room.Unlock()
	ctx.scheduleEviction(room.Code, hostID, at)

	ctx.Log.Info("game created", zap.String("room", room.Code), zap.String("host", hostID))
	render.JSON(w, ctx.Log, http.StatusCreated, CreatedResponse{
		Success:  true,
		RoomCode: room.Code,
		PlayerID: hostID,
	})
}

// HandleGetGame returns the public description of a room
func (ctx *Context) HandleGetGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, ok := ctx.Registry.Get(normalizeCode(ps.ByName("code")))
	if !ok {
		ctx.writeError(w, game.ErrRoomNotFound)
		return
	}

	room.RLock()
	info := room.Info()
	room.RUnlock()

	render.JSON(w, ctx.Log, http.StatusOK, info)
}

// HandleJoinGame seats a player in a lobby, absent until their socket binds
func (ctx *Context) HandleJoinGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req JoinGameRequest
	if err := parseJSONBody(r, &req); err != nil {
		ctx.writeError(w, err)
		return
	}
	req.RoomCode = normalizeCode(ps.ByName("code"))
	if err := req.Validate(); err != nil {
		ctx.writeError(w, err)
		return
	}

	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" {
		playerID = ctx.NewID()
	}
	at := ctx.Now()
	room, err := ctx.apply(req.RoomCode, func(room *game.Room) error {
		if err := room.AddPlayer(playerID, strings.TrimSpace(req.PlayerName)); err != nil {
			return err
		}
		room.Disconnect(playerID, at)
		return nil
	})
	if err != nil {
		ctx.writeError(w, err)
		return
	}
	ctx.scheduleEviction(room.Code, playerID, at)

	ctx.Log.Info("player joined", zap.String("room", room.Code), zap.String("player", playerID))
	ctx.broadcastState(room)
	render.JSON(w, ctx.Log, http.StatusOK, CreatedResponse{
		Success:  true,
		RoomCode: room.Code,
		PlayerID: playerID,
	})
}
