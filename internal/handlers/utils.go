package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/aaronzipp/banker-and-robber/internal/game"
	"github.com/aaronzipp/banker-and-robber/internal/hub"
	"github.com/aaronzipp/banker-and-robber/internal/models"
	"github.com/aaronzipp/banker-and-robber/internal/render"
)

var errNotInRoom = game.NewRuleViolation("Join the room first")

// apply runs fn against a room under its write lock
func (ctx *Context) apply(roomCode string, fn func(room *game.Room) error) (*game.Room, error) {
	room, ok := ctx.Registry.Get(roomCode)
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	room.Lock()
	err := fn(room)
	room.Unlock()
	return room, err
}

// broadcastState sends every member of the room their own view of it
func (ctx *Context) broadcastState(room *game.Room) {
	ctx.Hub.BroadcastPersonalized(room.Code, hub.EventGameUpdated, func(playerID string) any {
		room.RLock()
		defer room.RUnlock()
		return room.View(playerID)
	})
}

// view renders one player's view under the read lock
func view(room *game.Room, playerID string) models.GameView {
	room.RLock()
	defer room.RUnlock()
	return room.View(playerID)
}

// actor returns the player a connection is bound to, requiring the binding to
// match the room the command names
func (ctx *Context) actor(c *hub.Client, roomCode string) (string, error) {
	room, playerID := ctx.Hub.Binding(c)
	if room == "" || room != roomCode {
		return "", errNotInRoom
	}
	return playerID, nil
}

// requireActor rejects a command from the wrong player when the room is in
// the phase the command belongs to. Outside that phase the room itself
// decides, which keeps stale-client races silent
func requireActor(room *game.Room, phase models.GameStatus, allowed bool) error {
	if room.Status() == phase && !allowed {
		return game.ErrNotAuthorized
	}
	return nil
}

// reportError surfaces user-facing errors to the sender and swallows the rest
func (ctx *Context) reportError(c *hub.Client, cmd string, err error) {
	if game.IsSurfaced(err) {
		ctx.Hub.Send(c, hub.EventErrorMessage, err.Error())
		ctx.Log.Debug("command rejected", zap.String("command", cmd), zap.Error(err))
		return
	}
	ctx.Log.Debug("command ignored", zap.String("command", cmd), zap.Error(err))
}

// httpStatus maps a game error to an HTTP status code
func httpStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrNotAuthorized):
		return http.StatusForbidden
	case game.CodeOf(err) == game.CodeNotFound:
		return http.StatusNotFound
	case game.CodeOf(err) == "":
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// writeError renders err as a JSON error response
func (ctx *Context) writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		ctx.Log.Error("request failed", zap.Error(err))
	}
	render.Error(w, ctx.Log, status, err.Error())
}

// parseJSONBody decodes a request body into v
func parseJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return game.NewValidationError("Invalid data format")
	}
	return nil
}

// normalizeCode upper-cases and trims a room code from a URL or form
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
