package handlers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/aaronzipp/banker-and-robber/internal/game"
	"github.com/aaronzipp/banker-and-robber/internal/render"
)

// HandleRole returns a player's secret role card. Player ids are chosen by
// clients and may repeat across rooms, so the room code scopes the lookup
func (ctx *Context) HandleRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	playerID := ps.ByName("playerId")
	room, ok := ctx.Registry.Get(normalizeCode(ps.ByName("code")))
	if !ok {
		ctx.writeError(w, game.ErrRoomNotFound)
		return
	}

	room.RLock()
	card, err := room.RoleCard(playerID)
	room.RUnlock()
	if err != nil {
		ctx.writeError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	render.JSON(w, ctx.Log, http.StatusOK, card)
}
