package handlers

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/aaronzipp/banker-and-robber/internal/game"
	"github.com/aaronzipp/banker-and-robber/internal/hub"
	"github.com/aaronzipp/banker-and-robber/internal/models"
)

// JoinedPayload answers create_game and join_game
type JoinedPayload struct {
	RoomCode string          `json:"roomCode"`
	PlayerID string          `json:"playerId"`
	Game     models.GameView `json:"game"`
}

// Dispatch runs one inbound command from a connection. Errors are reported
// back to the sender or swallowed; they never reach the transport
func (ctx *Context) Dispatch(c *hub.Client, env Envelope) {
	var err error
	switch env.Type {
	case CmdCreateGame:
		err = ctx.createGame(c, env.Data)
	case CmdJoinGame:
		err = ctx.joinGame(c, env.Data)
	case CmdStartGame:
		err = ctx.startGame(c, env.Data)
	case CmdNominateChancellor:
		err = ctx.nominate(c, env.Data)
	case CmdSubmitVote:
		err = ctx.vote(c, env.Data)
	case CmdPresidentDiscard:
		err = ctx.presidentDiscard(c, env.Data)
	case CmdChancellorDiscard:
		err = ctx.chancellorDiscard(c, env.Data)
	case CmdVetoRequest:
		err = ctx.vetoRequest(c, env.Data)
	case CmdVetoResponse:
		err = ctx.vetoResponse(c, env.Data)
	case CmdExecutiveAction:
		err = ctx.executiveAction(c, env.Data)
	case CmdEndExecutiveAction:
		err = ctx.endExecutiveAction(c, env.Data)
	default:
		err = game.NewValidationError("Unknown command")
	}
	if err != nil {
		ctx.reportError(c, env.Type, err)
	}
}

func (ctx *Context) createGame(c *hub.Client, data json.RawMessage) error {
	req, err := decode[CreateGameRequest](data)
	if err != nil {
		return err
	}
	hostID := strings.TrimSpace(req.HostID)
	if hostID == "" {
		hostID = ctx.NewID()
	}

	prevRoom, prevPlayer := ctx.Hub.Binding(c)
	room, err := ctx.Registry.Create(hostID, strings.TrimSpace(req.HostName))
	if err != nil {
		return err
	}
	ctx.Hub.Join(room.Code, hostID, c)
	ctx.releasePrevious(prevRoom, prevPlayer, room.Code, hostID)
	ctx.Log.Info("game created", zap.String("room", room.Code), zap.String("host", hostID))

	ctx.Hub.Send(c, hub.EventGameCreated, JoinedPayload{
		RoomCode: room.Code,
		PlayerID: hostID,
		Game:     view(room, hostID),
	})
	return nil
}

func (ctx *Context) joinGame(c *hub.Client, data json.RawMessage) error {
	req, err := decode[JoinGameRequest](data)
	if err != nil {
		return err
	}
	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" {
		playerID = ctx.NewID()
	}

	prevRoom, prevPlayer := ctx.Hub.Binding(c)
	reconnected := false
	room, err := ctx.apply(req.RoomCode, func(room *game.Room) error {
		if room.HasPlayer(playerID) {
			reconnected = room.Reconnect(playerID)
		} else if err := room.AddPlayer(playerID, strings.TrimSpace(req.PlayerName)); err != nil {
			return err
		}
		// bind under the room lock so a racing disconnect sees the new connection
		ctx.Hub.Join(room.Code, playerID, c)
		return nil
	})
	if err != nil {
		return err
	}
	ctx.releasePrevious(prevRoom, prevPlayer, room.Code, playerID)

	ctx.Hub.Send(c, hub.EventGameJoined, JoinedPayload{
		RoomCode: room.Code,
		PlayerID: playerID,
		Game:     view(room, playerID),
	})
	if reconnected {
		ctx.Log.Info("player reconnected", zap.String("room", room.Code), zap.String("player", playerID))
		ctx.Hub.Broadcast(room.Code, hub.EventPlayerPresence, presence(playerID, true))
	} else {
		ctx.Log.Info("player joined", zap.String("room", room.Code), zap.String("player", playerID))
	}
	ctx.broadcastState(room)
	return nil
}

func (ctx *Context) startGame(c *hub.Client, data json.RawMessage) error {
	req, err := decode[RoomRequest](data)
	if err != nil {
		return err
	}
	actor, err := ctx.actor(c, req.RoomCode)
	if err != nil {
		return err
	}
	room, err := ctx.apply(req.RoomCode, func(room *game.Room) error {
		if err := requireActor(room, models.StatusLobby, room.IsHost(actor)); err != nil {
			return err
		}
		return room.StartGame()
	})
	if err != nil {
		return err
	}
	ctx.Log.Info("game started", zap.String("room", room.Code))
	ctx.broadcastState(room)
	ctx.Hub.Broadcast(room.Code, hub.EventGameStarted, nil)
	return nil
}

func (ctx *Context) nominate(c *hub.Client, data json.RawMessage) error {
	req, err := decode[NominateRequest](data)
	if err != nil {
		return err
	}
	actor, err := ctx.actor(c, req.RoomCode)
	if err != nil {
		return err
	}
	room, err := ctx.apply(req.RoomCode, func(room *game.Room) error {
		if err := requireActor(room, models.StatusElection, room.PresidentID() == actor); err != nil {
			return err
		}
		return room.NominateChancellor(req.ChancellorID)
	})
	if err != nil {
		return err
	}
	ctx.broadcastState(room)
	return nil
}

func (ctx *Context) vote(c *hub.Client, data json.RawMessage) error {
	req, err := decode[VoteRequest](data)
	if err != nil {
		return err
	}
	actor, err := ctx.actor(c, req.RoomCode)
	if err != nil {
		return err
	}
	if req.PlayerID != "" && req.PlayerID != actor {
		return game.ErrNotAuthorized
	}

	var result *game.ElectionResult
	room, err := ctx.apply(req.RoomCode, func(room *game.Room) error {
		result = room.RegisterVote(actor, *req.Vote)
		return nil
	})
	if err != nil {
		return err
	}
	if result != nil {
		ctx.Log.Info("election resolved", zap.String("room", room.Code),
			zap.Int("ja", result.Ja), zap.Int("nein", result.Nein), zap.Bool("passed", result.Passed))
	}
	ctx.broadcastState(room)
	return nil
}

func (ctx *Context) presidentDiscard(c *hub.Client, data json.RawMessage) error {
	req, err := decode[DiscardRequest](data)
	if err != nil {
		return err
	}
	actor, err := ctx.actor(c, req.RoomCode)
	if err != nil {
		return err
	}
	room, err := ctx.apply(req.RoomCode, func(room *game.Room) error {
		if err := requireActor(room, models.StatusLegislative, room.PresidentID() == actor); err != nil {
			return err
		}
		return room.PresidentDiscard(*req.PolicyIdx)
	})
	if err != nil {
		return err
	}
	ctx.broadcastState(room)
	return nil
}

func (ctx *Context) chancellorDiscard(c *hub.Client, data json.RawMessage) error {
	req, err := decode[DiscardRequest](data)
	if err != nil {
		return err
	}
	actor, err := ctx.actor(c, req.RoomCode)
	if err != nil {
		return err
	}
	room, err := ctx.apply(req.RoomCode, func(room *game.Room) error {
		if err := requireActor(room, models.StatusLegislative, room.ChancellorID() == actor); err != nil {
			return err
		}
		return room.ChancellorDiscard(*req.PolicyIdx)
	})
	if err != nil {
		return err
	}
	ctx.broadcastState(room)
	return nil
}

func (ctx *Context) vetoRequest(c *hub.Client, data json.RawMessage) error {
	req, err := decode[RoomRequest](data)
	if err != nil {
		return err
	}
	actor, err := ctx.actor(c, req.RoomCode)
	if err != nil {
		return err
	}
	room, err := ctx.apply(req.RoomCode, func(room *game.Room) error {
		if err := requireActor(room, models.StatusLegislative, room.ChancellorID() == actor); err != nil {
			return err
		}
		return room.RequestVeto()
	})
	if err != nil {
		return err
	}
	ctx.broadcastState(room)
	return nil
}

func (ctx *Context) vetoResponse(c *hub.Client, data json.RawMessage) error {
	req, err := decode[VetoResponseRequest](data)
	if err != nil {
		return err
	}
	actor, err := ctx.actor(c, req.RoomCode)
	if err != nil {
		return err
	}
	room, err := ctx.apply(req.RoomCode, func(room *game.Room) error {
		if err := requireActor(room, models.StatusLegislative, room.PresidentID() == actor); err != nil {
			return err
		}
		return room.ResolveVeto(*req.Approved)
	})
	if err != nil {
		return err
	}
	ctx.broadcastState(room)
	return nil
}

func (ctx *Context) executiveAction(c *hub.Client, data json.RawMessage) error {
	req, err := decode[ExecutiveActionRequest](data)
	if err != nil {
		return err
	}
	actor, err := ctx.actor(c, req.RoomCode)
	if err != nil {
		return err
	}

	var secret *game.Secret
	room, err := ctx.apply(req.RoomCode, func(room *game.Room) error {
		if err := requireActor(room, models.StatusExecutive, room.PresidentID() == actor); err != nil {
			return err
		}
		var err error
		secret, err = room.PerformExecutiveAction(req.Action, req.TargetID)
		return err
	})
	if err != nil {
		return err
	}

	if secret != nil {
		event := hub.EventInvestigationResult
		if secret.Action == models.ActionPolicyPeek {
			event = hub.EventPolicyPeek
		}
		// Private to the acting president
		ctx.Hub.Send(c, event, secret)
	}
	ctx.Log.Info("executive action", zap.String("room", room.Code), zap.String("action", string(req.Action)))
	ctx.broadcastState(room)
	return nil
}

func (ctx *Context) endExecutiveAction(c *hub.Client, data json.RawMessage) error {
	req, err := decode[RoomRequest](data)
	if err != nil {
		return err
	}
	actor, err := ctx.actor(c, req.RoomCode)
	if err != nil {
		return err
	}
	room, err := ctx.apply(req.RoomCode, func(room *game.Room) error {
		if err := requireActor(room, models.StatusExecutive, room.PresidentID() == actor); err != nil {
			return err
		}
		return room.FinishExecutiveAction()
	})
	if err != nil {
		return err
	}
	ctx.broadcastState(room)
	return nil
}

func presence(playerID string, connected bool) map[string]any {
	return map[string]any{"playerId": playerID, "connected": connected}
}
