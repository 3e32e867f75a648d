package handlers

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/aaronzipp/banker-and-robber/internal/game"
	"github.com/aaronzipp/banker-and-robber/internal/hub"
	"github.com/aaronzipp/banker-and-robber/internal/models"
	"github.com/aaronzipp/banker-and-robber/internal/render"
)

// StartRequest is the body of the HTTP start endpoint
type StartRequest struct {
	PlayerID string `json:"playerId"`
}

// HandleStartGame starts a game on behalf of the host
func (ctx *Context) HandleStartGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req StartRequest
	if err := parseJSONBody(r, &req); err != nil {
		ctx.writeError(w, err)
		return
	}
	code := normalizeCode(ps.ByName("code"))

	room, err := ctx.apply(code, func(room *game.Room) error {
		if !room.IsHost(req.PlayerID) {
			return game.ErrNotAuthorized
		}
		return room.StartGame()
	})
	if err != nil {
		ctx.writeError(w, err)
		return
	}

	ctx.Log.Info("game started", zap.String("room", room.Code))
	ctx.broadcastState(room)
	ctx.Hub.Broadcast(room.Code, hub.EventGameStarted, nil)
	render.JSON(w, ctx.Log, http.StatusOK, map[string]bool{"success": true})
}

// disconnect unbinds a closed connection and marks its player absent once
// their last connection is gone
func (ctx *Context) disconnect(c *hub.Client) {
	code, playerID := ctx.Hub.Leave(c)
	ctx.markAbsent(code, playerID)
}

// markAbsent flags a player with no live connection as disconnected. Lobby
// players are evicted after a grace delay
func (ctx *Context) markAbsent(code, playerID string) {
	if code == "" || ctx.Hub.IsConnected(code, playerID) {
		return
	}

	at := ctx.Now()
	marked := false
	var status models.GameStatus
	room, err := ctx.apply(code, func(room *game.Room) error {
		// a reconnect binds under this lock, so the hub is authoritative here
		if ctx.Hub.IsConnected(code, playerID) {
			return nil
		}
		marked = room.Disconnect(playerID, at)
		status = room.Status()
		return nil
	})
	if err != nil || !marked {
		return
	}

	ctx.Log.Info("player disconnected", zap.String("room", code), zap.String("player", playerID))
	ctx.Hub.Broadcast(code, hub.EventPlayerPresence, presence(playerID, false))
	ctx.broadcastState(room)

	if status == models.StatusLobby {
		ctx.scheduleEviction(code, playerID, at)
	}
}

// releasePrevious releases the binding a connection held before it joined another
// room or switched player
func (ctx *Context) releasePrevious(prevRoom, prevPlayer, room, playerID string) {
	if prevRoom == "" || (prevRoom == room && prevPlayer == playerID) {
		return
	}
	ctx.markAbsent(prevRoom, prevPlayer)
}

func (ctx *Context) scheduleEviction(code, playerID string, at time.Time) {
	time.AfterFunc(ctx.Config.LobbyEvictDelay, func() {
		ctx.evict(code, playerID, at)
	})
}

// evict removes a lobby player who has not come back since at. A room left
// empty is closed
func (ctx *Context) evict(code, playerID string, at time.Time) {
	evicted, empty := false, false
	room, err := ctx.apply(code, func(room *game.Room) error {
		evicted = room.EvictIfStillDisconnected(playerID, at)
		empty = room.IsEmpty()
		return nil
	})
	if err != nil || !evicted {
		return
	}

	ctx.Log.Info("player evicted from lobby", zap.String("room", code), zap.String("player", playerID))
	if empty {
		ctx.Registry.Delete(code)
		ctx.Hub.CloseRoom(code)
		ctx.Log.Info("room closed", zap.String("room", code), zap.String("reason", "empty"))
		return
	}
	ctx.broadcastState(room)
}

// RoomsSwept notifies the clients of rooms removed by the registry sweeper
func (ctx *Context) RoomsSwept(codes []string) {
	for _, code := range codes {
		ctx.Hub.CloseRoom(code)
	}
	ctx.Log.Info("expired rooms removed", zap.Strings("rooms", codes))
}
